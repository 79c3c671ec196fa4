package handlers

import (
	"github.com/shopspring/decimal"
	dealservice "github.com/thenoetrevino/dealboard/internal/services/deal"
)

// dealRequest is a prospecting deal owned by Sarah Chen
func dealRequest(name string) dealservice.CreateDealRequest {
	return dealservice.CreateDealRequest{
		StageID: "prospecting",
		Name:    name,
		Value:   decimal.NewFromInt(1000),
		Owner:   "Sarah Chen",
	}
}
