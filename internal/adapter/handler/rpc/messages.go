// Package rpc declares the shoeinventory.Inventory gRPC service. Messages
// are plain structs carried by the JSON codec registered in codec.go, so the
// service needs no generated stubs.
package rpc

type Shoe struct {
	Country  string `json:"country"`
	Code     string `json:"code"`
	Product  string `json:"product"`
	Cost     string `json:"cost"`
	Quantity int64  `json:"quantity"`
}

type ItemValue struct {
	Product string `json:"product"`
	Code    string `json:"code"`
	Value   string `json:"value"`
}

type ListRequest struct{}

type ListResponse struct {
	Shoes []Shoe `json:"shoes"`
}

type AddRequest struct {
	Shoe Shoe `json:"shoe"`
}

type AddResponse struct {
	Shoe Shoe `json:"shoe"`
}

type RestockRequest struct {
	Quantity int64 `json:"quantity"`
}

type RestockResponse struct {
	Shoe Shoe `json:"shoe"`
}

type SearchRequest struct {
	Code string `json:"code"`
}

type SearchResponse struct {
	Shoe Shoe `json:"shoe"`
}

type ValueRequest struct{}

type ValueResponse struct {
	Items []ItemValue `json:"items"`
}

type HighestRequest struct{}

type HighestResponse struct {
	Shoe Shoe `json:"shoe"`
}
