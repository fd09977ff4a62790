/*
Package arff provides functions to read datasets from ARFF (Attribute-Relation
File Format) documents, which carry both the feature schema and the
instances.
*/
package arff

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature"
)

/*
ReadDataset takes an io.Reader for an ARFF document and the name of the class
attribute and returns the dataset it holds or an error.

Attributes of type numeric, real or integer become numeric features and
attributes declaring a set of categories between braces become nominal
features. Other attribute types are not supported. Lines starting with '%'
are comments. Data rows are comma separated and use '?' for missing values.
*/
func ReadDataset(ctx context.Context, reader io.Reader, className string) (*dataset.Dataset, error) {
	features, instances, err := read(ctx, reader)
	if err != nil {
		return nil, err
	}
	return dataset.New(features, className, instances)
}

/*
ReadDatasetFromFilePath takes a filepath string and the name of the class
attribute, opens the file to which the filepath points to and uses
ReadDataset to return a dataset or an error read from it.
*/
func ReadDatasetFromFilePath(ctx context.Context, filepath string, className string) (*dataset.Dataset, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %v", err)
	}
	defer f.Close()
	d, err := ReadDataset(ctx, f, className)
	if err != nil {
		err = fmt.Errorf("parsing ARFF file %s: %w", filepath, err)
	}
	return d, err
}

func read(ctx context.Context, reader io.Reader) ([]feature.Feature, []dataset.Instance, error) {
	var features []feature.Feature
	var instances []dataset.Instance
	inData := false
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for l := 1; scanner.Scan(); l++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		if inData {
			inst, err := parseRow(line, features)
			if err != nil {
				return nil, nil, fmt.Errorf("parsing line %d: %w", l, err)
			}
			instances = append(instances, inst)
			continue
		}
		keyword, rest := splitWord(line)
		switch strings.ToLower(keyword) {
		case "@relation":
		case "@attribute":
			f, err := parseAttribute(rest)
			if err != nil {
				return nil, nil, fmt.Errorf("parsing line %d: %v", l, err)
			}
			features = append(features, f)
		case "@data":
			if len(features) == 0 {
				return nil, nil, fmt.Errorf("line %d: data section without attributes", l)
			}
			inData = true
		default:
			return nil, nil, fmt.Errorf("line %d: unexpected %q in header", l, keyword)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading ARFF: %v", err)
	}
	if !inData {
		return nil, nil, fmt.Errorf("no @data section found")
	}
	return features, instances, nil
}

func parseAttribute(decl string) (feature.Feature, error) {
	name, rest := splitName(decl)
	if name == "" {
		return nil, fmt.Errorf("attribute without name")
	}
	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "{") {
		end := strings.LastIndex(rest, "}")
		if end < 0 {
			return nil, fmt.Errorf("unterminated category list for attribute %s", name)
		}
		categories, err := splitValues(rest[1:end])
		if err != nil {
			return nil, fmt.Errorf("parsing categories of attribute %s: %v", name, err)
		}
		if len(categories) == 0 {
			return nil, fmt.Errorf("nominal attribute %s declares no categories", name)
		}
		for _, c := range categories {
			if c == "" {
				return nil, fmt.Errorf("nominal attribute %s declares an empty category", name)
			}
		}
		return feature.NewNominalFeature(name, categories), nil
	}
	switch strings.ToLower(rest) {
	case "numeric", "real", "integer":
		return feature.NewNumericFeature(name), nil
	}
	return nil, fmt.Errorf("unsupported type %q for attribute %s", rest, name)
}

func parseRow(line string, features []feature.Feature) (dataset.Instance, error) {
	values, err := splitValues(line)
	if err != nil {
		return nil, err
	}
	if len(values) != len(features) {
		return nil, fmt.Errorf("expected %d values, found %d", len(features), len(values))
	}
	inst := make(dataset.Instance, len(features))
	for i, f := range features {
		v, err := dataset.ParseValue(f, values[i])
		if err != nil {
			return nil, err
		}
		inst[f.Name()] = v
	}
	return inst, nil
}

/*
splitValues splits a comma separated list of values. A value may be quoted
with single or double quotes, and only the quote that opened it closes it.
Inside quotes a backslash escapes the next character. Quotes within an
unquoted value are kept as they are.
*/
func splitValues(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var values []string
	var b strings.Builder
	var quote rune
	quoted, escaped := false, false
	flush := func() {
		v := b.String()
		if !quoted {
			v = strings.TrimSpace(v)
		}
		values = append(values, v)
		b.Reset()
		quoted = false
	}
	for _, r := range s {
		switch {
		case escaped:
			b.WriteRune(r)
			escaped = false
		case quote != 0:
			switch r {
			case '\\':
				escaped = true
			case quote:
				quote = 0
			default:
				b.WriteRune(r)
			}
		case (r == '\'' || r == '"') && !quoted && strings.TrimSpace(b.String()) == "":
			b.Reset()
			quote = r
			quoted = true
		case r == ',':
			flush()
		case quoted:
			if !unicode.IsSpace(r) {
				return nil, fmt.Errorf("unexpected %q after quoted value in %q", r, s)
			}
		default:
			b.WriteRune(r)
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated quote in %q", s)
	}
	flush()
	return values, nil
}

func splitWord(s string) (string, string) {
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i+1:])
}

func splitName(s string) (string, string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ""
	}
	if q := s[0]; q == '\'' || q == '"' {
		end := strings.IndexByte(s[1:], q)
		if end < 0 {
			return "", ""
		}
		return s[1 : end+1], s[end+2:]
	}
	return splitWord(s)
}
