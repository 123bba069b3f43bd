package pricing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats amounts with he-IL digit grouping.
var printer = message.NewPrinter(language.Hebrew)

// FormatPrice renders an amount as a customer-facing price string with the
// shekel sign and he-IL thousands grouping, e.g. FormatPrice(1234) == "₪1,234".
func FormatPrice(amount int) string {
	return "₪" + printer.Sprintf("%d", amount)
}
