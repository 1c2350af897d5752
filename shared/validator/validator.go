package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"larisa/shared/constant"
	"larisa/shared/failure"
	"mime/multipart"
	"reflect"
	"slices"
	"strings"
	"time"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

func registerStayDateValidation(field val.FieldLevel) bool {
	_, err := time.Parse(constant.StayDateFormat, field.Field().String())

	return err == nil
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	// report json names so messages match what the client sent
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}

		return name
	})

	if err := validate.RegisterValidation("staydate", registerStayDateValidation); err != nil {
		panic(err)
	}
}

// Validate decodes JSON from r into data and validates the result with the
// struct tags understood by go-playground/validator.
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

// ValidateID rejects identifiers the uuid key columns would refuse.
func ValidateID(name, id string) error {
	if err := validate.Var(id, "required,uuid"); err != nil {
		return failure.BadRequestFromString(name + " is malformed") //nolint:wrapcheck
	}

	return nil
}

// ValidateFile checks an uploaded file against the allowed content types and a size limit in MB.
func ValidateFile(file *multipart.FileHeader, maxSizeMB float64, allowedTypes ...string) error {
	if file == nil {
		return failure.BadRequestFromString(constant.FormFile + " is required")
	}

	contentType := file.Header.Get(constant.RequestHeaderContentType)
	if !slices.Contains(allowedTypes, contentType) {
		return failure.BadRequestFromString(fmt.Sprintf("%s must be one of %s", constant.FormFile, strings.Join(allowedTypes, " ")))
	}

	bytesConversion := 1024.0
	if float64(file.Size) > maxSizeMB*bytesConversion*bytesConversion {
		return failure.BadRequestFromString(fmt.Sprintf("%s must not exceed %g MB", constant.FormFile, maxSizeMB))
	}

	return nil
}
