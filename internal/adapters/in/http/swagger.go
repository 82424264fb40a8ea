package http

import (
	"encoding/json"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

// apiDocument serves the embedded OpenAPI document to swagger UI.
type apiDocument struct {
	raw []byte
}

func (d apiDocument) ReadDoc() string {
	return string(d.raw)
}

var registerDocOnce sync.Once

// documentJSON renders doc as JSON and registers it as the swag document
// read by /swagger/doc.json. swag allows a single registration per
// process, so later calls only render.
func documentJSON(doc *openapi3.T) ([]byte, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	registerDocOnce.Do(func() {
		swag.Register(swag.Name, apiDocument{raw: raw})
	})
	return raw, nil
}
