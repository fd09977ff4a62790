/*
Package queue defines tasks to be performed to grow a tree
as well as an in-memory FIFO Queue to manage them.
*/
package queue
