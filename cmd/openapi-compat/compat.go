package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var httpMethods = map[string]struct{}{
	"get": {}, "put": {}, "post": {}, "delete": {}, "patch": {}, "head": {}, "options": {},
}

type parameter struct {
	Name     string `yaml:"name"`
	In       string `yaml:"in"`
	Required bool   `yaml:"required"`
}

type operation struct {
	Parameters []parameter           `yaml:"parameters"`
	Responses  map[string]yaml.Node `yaml:"responses"`
	Security   []map[string][]string `yaml:"security"`
}

// apiDoc is the subset of a Swagger 2.0 document the check cares about.
// Both YAML and JSON documents decode into it.
type apiDoc struct {
	BasePath string                          `yaml:"basePath"`
	Paths    map[string]map[string]yaml.Node `yaml:"paths"`

	ops map[string]operation
}

func parseDoc(raw []byte) (*apiDoc, error) {
	var doc apiDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc.Paths == nil {
		return nil, errors.New("missing top-level paths field")
	}

	doc.ops = make(map[string]operation)
	for path, item := range doc.Paths {
		for method, node := range item {
			method = strings.ToLower(strings.TrimSpace(method))
			if _, ok := httpMethods[method]; !ok {
				continue
			}
			var op operation
			if err := node.Decode(&op); err != nil {
				return nil, fmt.Errorf("%s %s: %w", strings.ToUpper(method), path, err)
			}
			doc.ops[opKey(method, path)] = op
		}
	}
	return &doc, nil
}

func opKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}

func (o operation) required() map[string]struct{} {
	out := make(map[string]struct{})
	for _, p := range o.Parameters {
		if p.Required || p.In == "path" {
			out[p.In+":"+p.Name] = struct{}{}
		}
	}
	return out
}

func (o operation) secured() bool {
	return len(o.Security) > 0
}

// compare lists every change in revision that would break a client written
// against base: removed operations or response codes, newly required
// parameters and endpoints that started requiring a token.
func compare(base, revision *apiDoc) []string {
	var issues []string
	if base.BasePath != revision.BasePath {
		issues = append(issues, fmt.Sprintf("base path changed: %q -> %q", base.BasePath, revision.BasePath))
	}

	for key, baseOp := range base.ops {
		revOp, ok := revision.ops[key]
		if !ok {
			issues = append(issues, "removed operation: "+key)
			continue
		}

		for code := range baseOp.Responses {
			if _, ok := revOp.Responses[code]; !ok {
				issues = append(issues, fmt.Sprintf("removed response code: %s -> %s", key, strings.ToUpper(code)))
			}
		}

		baseRequired := baseOp.required()
		for param := range revOp.required() {
			if _, ok := baseRequired[param]; !ok {
				issues = append(issues, fmt.Sprintf("new required parameter: %s %s", key, param))
			}
		}

		if revOp.secured() && !baseOp.secured() {
			issues = append(issues, "now requires authentication: "+key)
		}
	}

	sort.Strings(issues)
	return issues
}
