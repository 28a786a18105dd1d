// Package docs publishes the OpenAPI document of the orders API to swag, where
// echo-swagger reads it to serve /api-docs.
package docs

import (
	"sync"

	"orders/internal/generated/servers"

	"github.com/swaggo/swag"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// Register makes the document available under swag.Name. Only the first call
// has an effect; swag refuses a second registration of the same name.
func Register() error {
	registerOnce.Do(func() {
		doc, err := servers.SwaggerJSON()
		if err != nil {
			registerErr = err
			return
		}

		swag.Register(swag.Name, &swag.Spec{
			InfoInstanceName: swag.Name,
			SwaggerTemplate:  doc,
			LeftDelim:        "{%",
			RightDelim:       "%}",
		})
	})
	return registerErr
}
