// Package openapi exports manifest schemas as OpenAPI object schemas so
// protocol inputs can be published next to an API description and checked
// with kin-openapi's validator.
package openapi
