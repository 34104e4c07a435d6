package cart

import (
	cartdto "github.com/streetsneakers/sneakers-backend/api/controllers/cart/dto"
	cartsvc "github.com/streetsneakers/sneakers-backend/internal/cart"
)

func newCartView(state cartsvc.State) cartdto.CartView {
	items := make([]cartdto.CartItem, 0, len(state.Items))
	for _, item := range state.Items {
		items = append(items, cartdto.CartItem{
			ID:              item.ID,
			ProductID:       item.ProductID,
			Name:            item.Name,
			Image:           item.Image,
			Brand:           item.Brand,
			Slug:            item.Slug,
			ColorID:         item.ColorID,
			ColorName:       item.ColorName,
			SizeID:          item.SizeID,
			SizeName:        item.SizeName,
			Price:           item.Price,
			OriginalPrice:   item.OriginalPrice,
			DiscountPercent: item.DiscountPercent,
			HasDiscount:     item.HasDiscount(),
			Quantity:        item.Quantity,
			Stock:           item.Stock,
			LineTotal:       item.LineTotal(),
		})
	}

	view := cartdto.CartView{
		Kind:            state.Kind,
		Items:           items,
		TotalItems:      state.Totals.TotalItems,
		Subtotal:        state.Totals.Subtotal,
		Tax:             state.Totals.Tax,
		Shipping:        state.Totals.Shipping,
		VoucherDiscount: state.Totals.VoucherDiscount,
		Total:           state.Totals.Total,
	}
	if v := state.Voucher; v != nil {
		view.Voucher = &cartdto.VoucherView{
			Code:          v.Code,
			Type:          v.Type,
			Value:         v.Value,
			MaxDiscount:   v.MaxDiscount,
			MinOrderValue: v.MinOrderValue,
		}
	}
	return view
}

func newMutationResponse(m cartsvc.Mutation) cartdto.MutationResponse {
	return cartdto.MutationResponse{
		Result: cartdto.ResultView{
			Outcome:        m.Result.Outcome,
			VoucherCleared: m.Result.VoucherCleared,
			Quantity:       m.Result.Quantity,
		},
		Cart: newCartView(m.Cart),
	}
}
