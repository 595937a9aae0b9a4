package models

// Response is the uniform envelope returned by every endpoint.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}
