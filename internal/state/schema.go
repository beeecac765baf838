package state

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	invopop "github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const schemaURL = "installed.schema.json"

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// Schema returns the JSON schema of File, reflected from the Go type.
func Schema() ([]byte, error) {
	r := &invopop.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
	}
	s := r.Reflect(&File{})
	s.Title = "installed capabilities"
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshaling state schema")
	}
	return data, nil
}

func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		raw, err := Schema()
		if err != nil {
			compileErr = err
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			compileErr = errors.Wrap(err, "unmarshaling state schema")
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = errors.Wrap(err, "adding state schema resource")
			return
		}
		compiledSchema, err = c.Compile(schemaURL)
		if err != nil {
			compileErr = errors.Wrap(err, "compiling state schema")
		}
	})
	return compiledSchema, compileErr
}

// InvalidError reports a state document that does not match the schema.
type InvalidError struct {
	Path   string
	Issues []string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("state file %s is invalid: %s", e.Path, strings.Join(e.Issues, "; "))
}

// validate checks a decoded YAML document against the schema.
func validate(path string, doc interface{}) error {
	schema, err := getSchema()
	if err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrapf(err, "converting %s to JSON", path)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return errors.Wrapf(err, "preparing %s for validation", path)
	}

	err = schema.Validate(inst)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return errors.Wrapf(err, "validating %s", path)
	}

	invalid := &InvalidError{Path: path}
	collectIssues(ve, &invalid.Issues)
	if len(invalid.Issues) == 0 {
		invalid.Issues = []string{ve.Error()}
	}
	return invalid
}

func collectIssues(ve *jsonschema.ValidationError, out *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/" + strings.Join(ve.InstanceLocation, "/")
		msg := ve.Error()
		if ve.ErrorKind != nil {
			msg = ve.ErrorKind.LocalizedString(printer)
		}
		*out = append(*out, loc+": "+msg)
		return
	}
	for _, cause := range ve.Causes {
		collectIssues(cause, out)
	}
}
