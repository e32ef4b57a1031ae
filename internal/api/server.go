package api

import "github.com/RoyceAzure/lab/storefront/internal/api/handler"

type Server struct {
	OrderHandler *handler.OrderHandler
}

func NewServer(
	orderHandler *handler.OrderHandler,
) *Server {
	return &Server{
		OrderHandler: orderHandler,
	}
}
