/*
Package mongodataset provides functions to read datasets from
MongoDB collections.

Each document on the collection is an instance with a field for each
feature. Nominal features hold the category label and numeric features
a number. Absent fields, null values, empty strings and '?' are missing
values.
*/
package mongodataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

/*
Source is a collection of instances that can be read sequentially
*/
type Source interface {
	Read(context.Context) (<-chan dataset.Instance, <-chan error)
	Count(context.Context) (int, error)
}

type mongoSource struct {
	session    *mgo.Session
	collection string
	features   []feature.Feature
}

/*
Open takes a MongoDB database session, a collection name and a slice of
features and returns a Source that reads instances from that collection
on the default database for that session, or an error if a feature
cannot be used as a field name.
*/
func Open(session *mgo.Session, collection string, features []feature.Feature) (Source, error) {
	for _, f := range features {
		fName := f.Name()
		if fName == "_id" {
			return nil, fmt.Errorf("invalid feature name %q: reserved collection field", "_id")
		}
		if strings.ContainsAny(fName, ".$") {
			return nil, fmt.Errorf("invalid feature name %q: contains reserved characters %q or %q", fName, ".", "$")
		}
	}
	return &mongoSource{session, collection, features}, nil
}

/*
ReadDataset takes a context, a MongoDB session, a collection name, a slice
of features and the name of the class feature and returns a dataset with
an instance for each document on the collection or an error.
*/
func ReadDataset(ctx context.Context, session *mgo.Session, collection string, features []feature.Feature, className string) (*dataset.Dataset, error) {
	src, err := Open(session, collection, features)
	if err != nil {
		return nil, err
	}
	var instances []dataset.Instance
	if count, err := src.Count(ctx); err == nil {
		instances = make([]dataset.Instance, 0, count)
	}
	instChan, errs := src.Read(ctx)
	for inst := range instChan {
		instances = append(instances, inst)
	}
	if err = <-errs; err != nil {
		return nil, fmt.Errorf("reading collection %s: %w", collection, err)
	}
	return dataset.New(features, className, instances)
}

func (ms *mongoSource) Count(context.Context) (int, error) {
	return ms.samplesCollection().Count()
}

func (ms *mongoSource) Read(ctx context.Context) (<-chan dataset.Instance, <-chan error) {
	instances := make(chan dataset.Instance)
	errs := make(chan error, 1)
	go func() {
		defer close(errs)
		defer close(instances)
		var doc bson.M
		iter := ms.samplesCollection().Find(nil).Select(ms.projection()).Iter()
		defer iter.Close()
		for iter.Next(&doc) {
			inst, err := docToInstance(doc, ms.features)
			if err != nil {
				errs <- err
				return
			}
			select {
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			case instances <- inst:
			}
			doc = nil
		}
		if err := iter.Err(); err != nil {
			errs <- err
		}
	}()
	return instances, errs
}

func (ms *mongoSource) samplesCollection() *mgo.Collection {
	return ms.session.DB("").C(ms.collection)
}

func (ms *mongoSource) projection() bson.M {
	p := bson.M{"_id": 0}
	for _, f := range ms.features {
		p[f.Name()] = 1
	}
	return p
}

func docToInstance(doc bson.M, features []feature.Feature) (dataset.Instance, error) {
	inst := make(dataset.Instance, len(features))
	for _, f := range features {
		var v feature.Value
		var err error
		switch raw := doc[f.Name()].(type) {
		case nil:
			v = feature.Missing()
		case string:
			v, err = dataset.ParseValue(f, raw)
		case float64:
			v, err = numericOrLabel(f, raw)
		case int:
			v, err = numericOrLabel(f, float64(raw))
		case int64:
			v, err = numericOrLabel(f, float64(raw))
		case bool:
			v, err = dataset.ParseValue(f, fmt.Sprintf("%v", raw))
		default:
			err = fmt.Errorf("unsupported %T value for feature %s: %w", raw, f.Name(), feature.ErrSchemaMismatch)
		}
		if err != nil {
			return nil, err
		}
		inst[f.Name()] = v
	}
	return inst, nil
}

// numericOrLabel takes a number from a document and interprets it under f,
// nominal features read it as a label
func numericOrLabel(f feature.Feature, n float64) (feature.Value, error) {
	if f.Kind() == feature.Numeric {
		v := feature.NumericValue(n)
		return v, v.Valid(f)
	}
	return dataset.ParseValue(f, fmt.Sprintf("%v", n))
}
