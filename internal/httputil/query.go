package httputil

import (
	"net/url"
	"reflect"
)

// GetURLFields returns the names of the fields of filter that are set in the
// query string.
//
// queryFields only contains the fields that can be used directly in a gorm
// Where statement. Fields with the struct tag filterField:"false" are
// processed outside of the database query and only returned in setFields.
func GetURLFields(url *url.URL, filter any) (queryFields []any, setFields []string) {
	query := url.Query()

	val := reflect.Indirect(reflect.ValueOf(filter))
	for i := 0; i < val.NumField(); i++ {
		field := val.Type().Field(i).Name
		param := val.Type().Field(i).Tag.Get("form")
		filterField := val.Type().Field(i).Tag.Get("filterField")

		if !query.Has(param) {
			continue
		}

		setFields = append(setFields, field)
		if filterField != "false" {
			queryFields = append(queryFields, field)
		}
	}

	return queryFields, setFields
}
