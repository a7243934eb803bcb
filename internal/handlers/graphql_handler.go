package handlers

import (
	"fmt"
	"log"
	"reflect"
	"strings"

	"alcolater/internal/models"
	"alcolater/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/shopspring/decimal"
)

// GraphQLHandler serves the product catalog's query/mutation surface.
type GraphQLHandler struct {
	service  *services.ProductService
	validate *validator.Validate
	schema   graphql.Schema
}

// NewGraphQLHandler creates a new GraphQLHandler and builds its schema.
func NewGraphQLHandler(service *services.ProductService) (*GraphQLHandler, error) {
	h := &GraphQLHandler{
		service:  service,
		validate: newInputValidator(),
	}

	schema, err := h.buildSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to build GraphQL schema: %w", err)
	}
	h.schema = schema
	return h, nil
}

// RegisterRoutes registers the GraphQL endpoint with the Fiber app.
func (h *GraphQLHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/graphql", h.HandleGraphQL)
}

// graphQLRequest is the standard POST body of a GraphQL request.
type graphQLRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// HandleGraphQL executes a single GraphQL query or mutation.
func (h *GraphQLHandler) HandleGraphQL(c *fiber.Ctx) error {
	var req graphQLRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing GraphQL request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        c.Context(),
	})
	return c.JSON(result)
}

// newInputValidator builds the validator used on mutation inputs. Decimal
// fields are validated through their float value so the numeric rules apply.
func newInputValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		log.Fatalf("Failed to register notblank validation: %v", err)
	}
	return validate
}

// inputFieldMessage maps a failed validation rule to the message reported for
// that field.
func inputFieldMessage(e validator.FieldError) string {
	switch e.StructField() {
	case "Name":
		return "Product name is required"
	case "Price":
		if e.Tag() == "gt" {
			return "Price must be positive"
		}
		return "Price is required"
	case "Volume":
		if e.Tag() == "gt" {
			return "Volume must be positive"
		}
		return "Volume is required"
	case "AlcoholPercentage":
		if e.Tag() == "gt" {
			return "Alcohol percentage must be positive"
		}
		return "Alcohol percentage is required"
	}
	return fmt.Sprintf("Field '%s' failed on the '%s' rule", e.Field(), e.Tag())
}

// validateInput runs field-level validation on a mutation input. The returned
// error carries one human-readable message per violated field and prevents
// the mutation from reaching the service.
func (h *GraphQLHandler) validateInput(input models.ProductInput) error {
	err := h.validate.Struct(input)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, fmt.Sprintf("%s: %s", e.Field(), inputFieldMessage(e)))
	}
	return fmt.Errorf("invalid product input: %s", strings.Join(messages, "; "))
}

// decimalType transports exact decimal values. Inputs accept numbers or
// strings; outputs are serialized as strings so no precision is lost.
var decimalType = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "Decimal",
	Description: "An arbitrary-precision decimal, accepted as a number or a string and serialized as a string.",
	Serialize: func(value interface{}) interface{} {
		switch v := value.(type) {
		case decimal.Decimal:
			return v.String()
		case *decimal.Decimal:
			if v != nil {
				return v.String()
			}
		}
		return nil
	},
	ParseValue: func(value interface{}) interface{} {
		switch v := value.(type) {
		case string:
			d, err := decimal.NewFromString(v)
			if err != nil {
				return nil
			}
			return d
		case float64:
			return decimal.NewFromFloat(v)
		case int:
			return decimal.NewFromInt(int64(v))
		}
		return nil
	},
	ParseLiteral: func(valueAST ast.Value) interface{} {
		switch v := valueAST.(type) {
		case *ast.IntValue:
			d, err := decimal.NewFromString(v.Value)
			if err != nil {
				return nil
			}
			return d
		case *ast.FloatValue:
			d, err := decimal.NewFromString(v.Value)
			if err != nil {
				return nil
			}
			return d
		case *ast.StringValue:
			d, err := decimal.NewFromString(v.Value)
			if err != nil {
				return nil
			}
			return d
		}
		return nil
	},
})

// productFromSource normalizes the resolver source for the computed fields.
func productFromSource(source interface{}) (models.Product, bool) {
	switch v := source.(type) {
	case models.Product:
		return v, true
	case *models.Product:
		if v != nil {
			return *v, true
		}
	}
	return models.Product{}, false
}

// productInputFromArgs decodes the coerced input map into a ProductInput.
// Decimal values arrive already parsed by the Decimal scalar.
func productInputFromArgs(args map[string]interface{}) models.ProductInput {
	var input models.ProductInput
	if v, ok := args["name"].(string); ok {
		input.Name = v
	}
	if v, ok := args["price"].(decimal.Decimal); ok {
		input.Price = v
	}
	if v, ok := args["volume"].(decimal.Decimal); ok {
		input.Volume = v
	}
	if v, ok := args["alcoholPercentage"].(decimal.Decimal); ok {
		input.AlcoholPercentage = v
	}
	if v, ok := args["userId"].(string); ok {
		input.UserID = &v
	}
	return input
}

// buildSchema wires the product type, inputs, queries and mutations.
func (h *GraphQLHandler) buildSchema() (graphql.Schema, error) {
	productType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":                &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"name":              &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"price":             &graphql.Field{Type: graphql.NewNonNull(decimalType)},
			"volume":            &graphql.Field{Type: graphql.NewNonNull(decimalType)},
			"alcoholPercentage": &graphql.Field{Type: graphql.NewNonNull(decimalType)},
			"userId": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					product, ok := productFromSource(p.Source)
					if !ok || product.UserID == "" {
						return nil, nil
					}
					return product.UserID, nil
				},
			},
			// The value metrics are computed per request, never persisted.
			"valueRatio": &graphql.Field{
				Type: graphql.NewNonNull(decimalType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					product, _ := productFromSource(p.Source)
					return product.ValueRatio(), nil
				},
			},
			"pricePerLiter": &graphql.Field{
				Type: graphql.NewNonNull(decimalType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					product, _ := productFromSource(p.Source)
					return product.PricePerLiter(), nil
				},
			},
			"standardDrinks": &graphql.Field{
				Type: graphql.NewNonNull(decimalType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					product, _ := productFromSource(p.Source)
					return product.StandardDrinks(), nil
				},
			},
			"pricePerStandardDrink": &graphql.Field{
				Type: graphql.NewNonNull(decimalType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					product, _ := productFromSource(p.Source)
					return product.PricePerStandardDrink(), nil
				},
			},
		},
	})

	productInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ProductInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":              &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"price":             &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(decimalType)},
			"volume":            &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(decimalType)},
			"alcoholPercentage": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(decimalType)},
			"userId":            &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	productFilterType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ProductFilter",
		Fields: graphql.InputObjectConfigFieldMap{
			"userId": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(productType))),
				Args: graphql.FieldConfigArgument{
					"where": &graphql.ArgumentConfig{Type: productFilterType},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var filter *models.ProductFilter
					if where, ok := p.Args["where"].(map[string]interface{}); ok {
						filter = &models.ProductFilter{}
						if userID, ok := where["userId"].(string); ok {
							filter.UserID = userID
						}
					}
					return h.service.GetAllProducts(filter)
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					product, err := h.service.GetProductByID(id)
					if err != nil {
						return nil, err
					}
					if product == nil {
						// Absence on a read is a null result, not an error.
						return nil, nil
					}
					return product, nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createProduct": &graphql.Field{
				Type: graphql.NewNonNull(productType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(productInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					args, _ := p.Args["input"].(map[string]interface{})
					input := productInputFromArgs(args)
					if err := h.validateInput(input); err != nil {
						return nil, err
					}
					return h.service.CreateProduct(input)
				},
			},
			"updateProduct": &graphql.Field{
				Type: graphql.NewNonNull(productType),
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(productInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					args, _ := p.Args["input"].(map[string]interface{})
					input := productInputFromArgs(args)
					if err := h.validateInput(input); err != nil {
						return nil, err
					}
					product, err := h.service.UpdateProduct(id, input)
					if err != nil {
						return nil, err
					}
					if product == nil {
						// Updating an unknown id is the one case where absence
						// is a visible failure.
						return nil, fmt.Errorf("product not found with id: %s", id)
					}
					return product, nil
				},
			},
			"deleteProduct": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					return h.service.DeleteProduct(id)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}
