package httpapi

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Schemas check the shape of a body only. Presence of fields is left to the
// domain so that every missing field is reported together.

const schemaRegister = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "name": { "type": "string" },
    "email": { "type": "string" },
    "password": { "type": "string" },
    "role": { "type": "string" },
    "secretKey": { "type": "string" }
  }
}`

const schemaLogin = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "email": { "type": "string" },
    "password": { "type": "string" }
  }
}`

const schemaCheckout = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "cartItems": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "productId": { "type": "string" },
          "_id": { "type": "string" },
          "name": { "type": "string" },
          "quantity": { "type": "integer" },
          "price": { "type": "number" }
        }
      }
    },
    "shippingInfo": {
      "type": "object",
      "properties": {
        "name": { "type": "string" },
        "email": { "type": "string" },
        "phone": { "type": "string" },
        "address": { "type": "string" }
      }
    },
    "paymentMethod": { "type": "string" },
    "paymentStatus": { "type": "string" },
    "paymentId": { "type": "string" },
    "total": { "type": "number" }
  }
}`

const schemaPaymentIntent = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "amount": { "type": "number" }
  }
}`

const schemaRecordPayment = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "amount": { "type": "number" },
    "paymentStatus": { "type": "string" },
    "paymentId": { "type": "string" },
    "paymentMethod": { "type": "string" }
  }
}`

var (
	registerSchema      = mustSchema(schemaRegister)
	loginSchema         = mustSchema(schemaLogin)
	checkoutSchema      = mustSchema(schemaCheckout)
	paymentIntentSchema = mustSchema(schemaPaymentIntent)
	recordPaymentSchema = mustSchema(schemaRecordPayment)
)

func mustSchema(s string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(fmt.Sprintf("gojsonschema.NewSchema: %v", err))
	}
	return schema
}
