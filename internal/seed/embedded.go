package seed

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"io"

	"bizarre-bazaar/internal/model"
)

//go:embed catalog.json
var embeddedCatalog []byte

// EmbeddedSource is the built-in demo catalog.
type EmbeddedSource struct{}

func (EmbeddedSource) Name() string { return "embedded" }

func (EmbeddedSource) Load(ctx context.Context) (*model.Catalog, error) {
	return Decode(bytes.NewReader(embeddedCatalog))
}

// Decode parses a catalog JSON document, rejecting unknown fields.
func Decode(r io.Reader) (*model.Catalog, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var c model.Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Default returns a fresh copy of the built-in catalog. It panics if the
// embedded document is broken.
func Default() *model.Catalog {
	c, err := EmbeddedSource{}.Load(context.Background())
	if err != nil {
		panic("seed: embedded catalog: " + err.Error())
	}
	if err := Validate(c); err != nil {
		panic("seed: embedded catalog: " + err.Error())
	}
	return c
}
