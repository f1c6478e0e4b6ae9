// Copyright (c) 2026 Marché Pagne. All rights reserved.
// Author: contact@marche-pagne.shop

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts common body decoding patterns for the JSON API and the
URL-encoded form posts of the server-rendered pages, ensuring consistent
error handling.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/marchepagne/compte/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
FormValue parses the form (once, idempotently) and returns the named field.

Body fields take precedence over query parameters, matching the classic
urlencoded middleware behavior the storefront forms were written against.
*/
func FormValue(request *http.Request, name string) string {
	return request.PostFormValue(name)
}

/*
RedirectURI resolves the optional redirect_uri parameter from the request,
checking the form body first and falling back to the query string.
*/
func RedirectURI(request *http.Request) string {
	if value := request.PostFormValue("redirect_uri"); value != "" {
		return value
	}
	return request.URL.Query().Get("redirect_uri")
}
