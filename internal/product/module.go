package product

import (
	"github.com/retrade/voucher/internal/product/internal/domain"
	"github.com/retrade/voucher/internal/product/internal/service"
)

type Module struct {
	Svc Service
}

type (
	Service = service.Service
	Product = domain.Product
	Status  = domain.Status
)

const (
	StatusOffShelf = domain.StatusOffShelf
	StatusOnShelf  = domain.StatusOnShelf
)
