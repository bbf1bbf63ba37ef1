// Package openapi builds the OpenAPI 3.1 document describing the word API.
// The route set is fixed, so the document is assembled once and served
// directly.
package openapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/wordwell/wordwell/internal/model"
)

// Generate builds the complete OpenAPI document.
func Generate() *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.1.0",
		Info: &openapi3.Info{
			Title:       "Wordwell API",
			Description: "A dictionary service serving random words and admin-managed word data.",
			Version:     "1.0.0",
		},
	}

	components := openapi3.NewComponents()
	components.Schemas = openapi3.Schemas{}
	components.SecuritySchemes = openapi3.SecuritySchemes{}
	doc.Components = &components

	doc.Components.SecuritySchemes["bearerAuth"] = &openapi3.SecuritySchemeRef{
		Value: &openapi3.SecurityScheme{
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}

	doc.Components.Schemas["ErrorResponse"] = &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type:     &openapi3.Types{"object"},
			Required: []string{"error"},
			Properties: openapi3.Schemas{
				"error": stringSchema(),
			},
		},
	}
	doc.Components.Schemas["PublicWord"] = &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type:     &openapi3.Types{"object"},
			Required: []string{"word", "definition", "pronunciation"},
			Properties: openapi3.Schemas{
				"word":          stringSchema(),
				"definition":    stringSchema(),
				"pronunciation": stringSchema(),
			},
		},
	}
	doc.Components.Schemas["Word"] = &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"id":            {Value: &openapi3.Schema{Type: &openapi3.Types{"integer"}, Format: "int64"}},
				"word":          stringSchema(),
				"definition":    stringSchema(),
				"pronunciation": stringSchema(),
				"wordType":      wordTypeSchema(),
				"createdAt":     {Value: &openapi3.Schema{Type: &openapi3.Types{"string"}, Format: "date-time"}},
				"updatedAt":     {Value: &openapi3.Schema{Type: &openapi3.Types{"string"}, Format: "date-time"}},
			},
		},
	}
	doc.Components.Schemas["UpsertWord"] = &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type:     &openapi3.Types{"object"},
			Required: []string{"word", "definition", "pronunciation", "wordType"},
			Properties: openapi3.Schemas{
				"word":          stringSchema(),
				"definition":    stringSchema(),
				"pronunciation": stringSchema(),
				"wordType":      wordTypeSchema(),
			},
		},
	}
	doc.Components.Schemas["LoginRequest"] = &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type:     &openapi3.Types{"object"},
			Required: []string{"username", "password"},
			Properties: openapi3.Schemas{
				"username": stringSchema(),
				"password": stringSchema(),
			},
		},
	}
	doc.Components.Schemas["AuthResponse"] = &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"token":      stringSchema(),
				"expires_in": {Value: &openapi3.Schema{Type: &openapi3.Types{"integer"}, Format: "int64"}},
				"user": {Value: &openapi3.Schema{
					Type: &openapi3.Types{"object"},
					Properties: openapi3.Schemas{
						"username": stringSchema(),
						"isAdmin":  {Value: &openapi3.Schema{Type: &openapi3.Types{"boolean"}}},
					},
				}},
			},
		},
	}

	doc.Paths = openapi3.NewPaths()

	doc.Paths.Set("/health/alive", &openapi3.PathItem{
		Get: statusOperation("Liveness probe", "health"),
	})
	doc.Paths.Set("/health/ready", &openapi3.PathItem{
		Get: statusOperation("Readiness probe", "health"),
	})

	doc.Paths.Set("/auth/login", &openapi3.PathItem{
		Post: &openapi3.Operation{
			Tags:        []string{"auth"},
			Summary:     "Log in and obtain a session token",
			OperationID: "login",
			RequestBody: jsonRequestBody("#/components/schemas/LoginRequest"),
			Responses: responsesWith(map[string]string{
				"200": "#/components/schemas/AuthResponse",
			}, "400", "401"),
		},
	})

	langParam := pathParameter("lang", "Language code, e.g. en")

	doc.Paths.Set("/{lang}/random", &openapi3.PathItem{
		Get: &openapi3.Operation{
			Tags:        []string{"words"},
			Summary:     "Get a random word",
			OperationID: "randomWord",
			Parameters:  openapi3.Parameters{langParam},
			Responses: responsesWith(map[string]string{
				"200": "#/components/schemas/PublicWord",
			}, "400", "404"),
		},
	})
	doc.Paths.Set("/{lang}/{type}", &openapi3.PathItem{
		Get: &openapi3.Operation{
			Tags:        []string{"words"},
			Summary:     "Get a random word of a grammatical type",
			OperationID: "randomWordByType",
			Parameters: openapi3.Parameters{
				langParam,
				pathParameter("type", fmt.Sprintf("Grammatical type, one of %v", model.GrammaticalTypes)),
			},
			Responses: responsesWith(map[string]string{
				"200": "#/components/schemas/PublicWord",
			}, "400", "404"),
		},
	})

	adminSecurity := openapi3.SecurityRequirements{{"bearerAuth": {}}}

	doc.Paths.Set("/admin/{lang}/words", &openapi3.PathItem{
		Get: &openapi3.Operation{
			Tags:        []string{"admin"},
			Summary:     "List all words",
			OperationID: "listWords",
			Security:    &adminSecurity,
			Parameters:  openapi3.Parameters{langParam},
			Responses: responsesWith(map[string]string{
				"200": "", // array schema set below
			}, "401", "403"),
		},
		Post: &openapi3.Operation{
			Tags:        []string{"admin"},
			Summary:     "Create a word",
			OperationID: "createWord",
			Security:    &adminSecurity,
			Parameters:  openapi3.Parameters{langParam},
			RequestBody: jsonRequestBody("#/components/schemas/UpsertWord"),
			Responses: responsesWith(map[string]string{
				"200": "#/components/schemas/Word",
			}, "400", "401", "403"),
		},
	})

	idParam := pathParameter("id", "Word ID")

	doc.Paths.Set("/admin/{lang}/words/{id}", &openapi3.PathItem{
		Get: &openapi3.Operation{
			Tags:        []string{"admin"},
			Summary:     "Get a word",
			OperationID: "getWord",
			Security:    &adminSecurity,
			Parameters:  openapi3.Parameters{langParam, idParam},
			Responses: responsesWith(map[string]string{
				"200": "#/components/schemas/Word",
			}, "400", "401", "403", "404"),
		},
		Put: &openapi3.Operation{
			Tags:        []string{"admin"},
			Summary:     "Update a word",
			OperationID: "updateWord",
			Security:    &adminSecurity,
			Parameters:  openapi3.Parameters{langParam, idParam},
			RequestBody: jsonRequestBody("#/components/schemas/UpsertWord"),
			Responses: responsesWith(map[string]string{
				"200": "#/components/schemas/Word",
			}, "400", "401", "403", "404"),
		},
		Delete: &openapi3.Operation{
			Tags:        []string{"admin"},
			Summary:     "Delete a word",
			OperationID: "deleteWord",
			Security:    &adminSecurity,
			Parameters:  openapi3.Parameters{langParam, idParam},
			Responses: responsesWith(map[string]string{
				"200": "",
			}, "400", "401", "403", "404"),
		},
	})

	// The list operation returns a bare array of Word.
	listItem := doc.Paths.Value("/admin/{lang}/words")
	listResp := listItem.Get.Responses.Status(200)
	listResp.Value.Content = openapi3.NewContentWithJSONSchemaRef(&openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type:  &openapi3.Types{"array"},
			Items: openapi3.NewSchemaRef("#/components/schemas/Word", nil),
		},
	})

	return doc
}

// Handler serves the generated document as JSON.
func Handler() http.HandlerFunc {
	doc := Generate()
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(doc)
	}
}

// MarshalYAML renders the document as YAML for file export.
func MarshalYAML(doc *openapi3.T) ([]byte, error) {
	// Round-trip through JSON so kin-openapi's MarshalJSON tags apply.
	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal openapi document: %w", err)
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("unmarshal openapi document: %w", err)
	}
	return yaml.Marshal(v)
}

func stringSchema() *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}}
}

func wordTypeSchema() *openapi3.SchemaRef {
	enum := make([]interface{}, len(model.GrammaticalTypes))
	for i, t := range model.GrammaticalTypes {
		enum[i] = t
	}
	return &openapi3.SchemaRef{Value: &openapi3.Schema{
		Type: &openapi3.Types{"string"},
		Enum: enum,
	}}
}

func pathParameter(name, description string) *openapi3.ParameterRef {
	return &openapi3.ParameterRef{
		Value: &openapi3.Parameter{
			Name:        name,
			In:          "path",
			Required:    true,
			Description: description,
			Schema:      stringSchema(),
		},
	}
}

func jsonRequestBody(schemaRef string) *openapi3.RequestBodyRef {
	return &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().
			WithRequired(true).
			WithContent(openapi3.NewContentWithJSONSchemaRef(
				openapi3.NewSchemaRef(schemaRef, nil))),
	}
}

// statusOperation builds a GET operation returning {"status": "..."}.
func statusOperation(summary, tag string) *openapi3.Operation {
	statusSchema := &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"status": stringSchema(),
			},
		},
	}
	responses := openapi3.NewResponses()
	responses.Set("200", &openapi3.ResponseRef{
		Value: openapi3.NewResponse().
			WithDescription("OK").
			WithContent(openapi3.NewContentWithJSONSchemaRef(statusSchema)),
	})
	return &openapi3.Operation{
		Tags:      []string{tag},
		Summary:   summary,
		Responses: responses,
	}
}

// responsesWith builds a Responses set from success status to schema ref,
// plus error statuses that all share the ErrorResponse schema. An empty
// schema ref yields a body-less response.
func responsesWith(success map[string]string, errorStatuses ...string) *openapi3.Responses {
	responses := openapi3.NewResponses()
	for status, ref := range success {
		resp := openapi3.NewResponse().WithDescription("Success")
		if ref != "" {
			resp = resp.WithContent(openapi3.NewContentWithJSONSchemaRef(
				openapi3.NewSchemaRef(ref, nil)))
		}
		responses.Set(status, &openapi3.ResponseRef{Value: resp})
	}
	for _, status := range errorStatuses {
		code, _ := strconv.Atoi(status)
		responses.Set(status, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().
				WithDescription(http.StatusText(code)).
				WithContent(openapi3.NewContentWithJSONSchemaRef(
					openapi3.NewSchemaRef("#/components/schemas/ErrorResponse", nil))),
		})
	}
	return responses
}
