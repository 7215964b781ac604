package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"bizdash-be/internal/pricing"
	"bizdash-be/internal/product"
	"bizdash-be/internal/utils"

	"github.com/shopspring/decimal"
)

// productRequest is the product form. Price and stock accept numbers or
// numeric strings.
type productRequest struct {
	Name        *string             `json:"name"`
	SKU         *string             `json:"sku"`
	Category    *string             `json:"category"`
	Price       pricing.LooseNumber `json:"price"`
	Stock       pricing.LooseNumber `json:"stock"`
	Description *string             `json:"description"`
	Image       *string             `json:"image"`
	Active      *bool               `json:"active"`
}

// stock reads the stock field. Values outside the stock column are rejected
// rather than wrapped.
func (p productRequest) stock() (*int, error) {
	d, ok := p.Stock.Decimal()
	if !ok {
		return nil, nil
	}
	v, ok := pricing.WholeNumber(d, 0, product.MaxStock)
	if !ok {
		return nil, product.ErrInvalidStock
	}
	return &v, nil
}

func (p productRequest) createInput() (product.CreateInput, error) {
	in := product.CreateInput{
		Name:        utils.PtrString(p.Name),
		SKU:         utils.PtrString(p.SKU),
		Category:    product.Category(utils.PtrString(p.Category)),
		Description: p.Description,
		Image:       p.Image,
		Active:      p.Active,
	}
	if d, ok := p.Price.Decimal(); ok {
		in.Price = d
	}
	stock, err := p.stock()
	if err != nil {
		return in, err
	}
	if stock != nil {
		in.Stock = *stock
	}
	return in, nil
}

func (p productRequest) updateInput() (product.UpdateInput, error) {
	in := product.UpdateInput{
		Name:        p.Name,
		SKU:         p.SKU,
		Description: p.Description,
		Image:       p.Image,
		Active:      p.Active,
	}
	if p.Category != nil {
		c := product.Category(*p.Category)
		in.Category = &c
	}
	if d, ok := p.Price.Decimal(); ok {
		in.Price = &d
	}
	stock, err := p.stock()
	if err != nil {
		return in, err
	}
	in.Stock = stock
	return in, nil
}

func productFilter(r *http.Request) (product.Filter, error) {
	var f product.Filter

	if v, ok := queryParam(r, "category"); ok {
		c, err := product.ParseCategory(v)
		if err != nil {
			return f, err
		}
		f.Category = &c
	}
	if v, ok := queryParam(r, "active"); ok {
		active, err := strconv.ParseBool(v)
		if err != nil {
			return f, fmt.Errorf("%w: active", errBadFilter)
		}
		f.Active = &active
	}
	for key, dst := range map[string]**decimal.Decimal{"minPrice": &f.MinPrice, "maxPrice": &f.MaxPrice} {
		v, ok := queryParam(r, key)
		if !ok {
			continue
		}
		d, err := product.ParsePrice(v)
		if err != nil {
			return f, fmt.Errorf("%w: %s", errBadFilter, key)
		}
		*dst = &d
	}
	if v, ok := queryParam(r, "q"); ok {
		f.Search = &v
	}
	return f, nil
}

func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	if id, ok := queryID(r); ok {
		p, err := h.products.Get(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, p)
		return
	}

	f, err := productFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	products, err := h.products.List(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, products)
}

func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	in, err := req.createInput()
	if err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.products.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := queryID(r)
	if !ok {
		writeError(w, r, errMissingID)
		return
	}

	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	in, err := req.updateInput()
	if err != nil {
		writeError(w, r, err)
		return
	}

	p, changes, err := h.products.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"product": p, "changes": changes})
}

func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := queryID(r)
	if !ok {
		writeError(w, r, errMissingID)
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
