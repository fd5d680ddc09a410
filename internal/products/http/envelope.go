package http

import "coldstore/internal/products/validation"

// response is the uniform envelope every endpoint answers with.
type response struct {
	Success    bool            `json:"success"`
	Data       any             `json:"data,omitempty"`
	Message    string          `json:"message,omitempty"`
	Error      *responseError  `json:"error,omitempty"`
	Pagination *paginationMeta `json:"pagination,omitempty"`
}

type responseError struct {
	Message string                  `json:"message" example:"Product not found."`
	Details []validation.FieldError `json:"details,omitempty"`
}

type paginationMeta struct {
	TotalItems   int64 `json:"totalItems" example:"42"`
	TotalPages   int   `json:"totalPages" example:"5"`
	CurrentPage  int   `json:"currentPage" example:"1"`
	ItemsPerPage int   `json:"itemsPerPage" example:"10"`
}

func ok(data any) response {
	return response{Success: true, Data: data}
}

func fail(message string, details []validation.FieldError) response {
	return response{Success: false, Error: &responseError{Message: message, Details: details}}
}
