package bot

import (
	"fmt"
	"strconv"

	"github.com/nfanikita31-bit/woodshop-sushko/internal/pricing"
	"github.com/nfanikita31-bit/woodshop-sushko/internal/session"
)

// formatSummary renders the order summary shown to the customer and forwarded
// to the admin. All rounding happens here.
func formatSummary(draft session.Draft, distanceKm float64, breakdown pricing.Breakdown) string {
	return fmt.Sprintf(
		"📦 Заказ:\n"+
			"Вид дров: %s\n"+
			"Объем: %s кубов\n"+
			"Адрес: %s\n"+
			"Телефон: %s\n"+
			"Скидка: %s (%d%%)\n"+
			"Расстояние: %.2f км\n"+
			"💰 Цена дров (со скидкой): %.2f руб.\n"+
			"🔻 Скидка на дрова: -%.2f руб.\n"+
			"🚚 Доставка: %.2f руб.\n"+
			"💵 Итоговая цена: %.2f руб.",
		draft.Product,
		strconv.FormatFloat(draft.Volume, 'f', -1, 64),
		draft.Address,
		draft.Phone,
		draft.Discount,
		int(draft.DiscountRate*100),
		distanceKm,
		breakdown.DiscountedPrice,
		breakdown.DiscountValue,
		breakdown.DeliveryPrice,
		breakdown.Total,
	)
}
