package response

import (
	"encoding/json"
	"larisa/shared/constant"
	"larisa/shared/failure"
	"larisa/shared/logger"
	"net/http"
)

type Message struct {
	Message string `json:"message"`
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Message: message})
}

// WithJSON sends the payload as the whole body, without an envelope.
func WithJSON(writer http.ResponseWriter, code int, jsonPayload any) {
	response(writer, code, jsonPayload)
}

// WithError sends a {message} body with the status carried by the failure, 500 otherwise.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	message := err.Error()

	if code == http.StatusInternalServerError {
		message = http.StatusText(http.StatusInternalServerError)
	}

	WithMessage(writer, code, message)
}

// WithText sends a plain text body.
func WithText(writer http.ResponseWriter, code int, text string) {
	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeText)
	writer.WriteHeader(code)

	if _, err := writer.Write([]byte(text)); err != nil {
		logger.ErrorWithStack(err)
	}
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func response(writer http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
