package extract

import (
	"fmt"
	"strings"

	"serviq/internal/domain"
)

const batchSystemInstruction = "You are a precise data extraction assistant. Copy customer details " +
	"exactly as written in the text, without correcting spelling or changing anything. " +
	"Accuracy is the top priority."

func catalogList(catalog []domain.Product) string {
	parts := make([]string, 0, len(catalog))
	for _, p := range catalog {
		parts = append(parts, fmt.Sprintf("(ID: %q, Name: %q)", p.ID, p.Name))
	}
	return strings.Join(parts, ", ")
}

func singlePrompt(text string, catalog []domain.Product) string {
	return fmt.Sprintf(`Analyze the following text and extract the order details.
Text: %q

Available products: [%s].

Task:
1. Extract the customer details (name, phones, governorate, address).
2. For every item mentioned, pick the closest matching product from the available products.
   Match on meaning, not only exact words.
3. Return the product ID, not its name.
4. If something is described as a gift or free, set isGift to true.
5. Format the output as JSON following the given schema.
Valid governorates: %s.`, text, catalogList(catalog), strings.Join(domain.Governorates, ", "))
}

func batchPrompt(text string, catalog []domain.Product) string {
	return fmt.Sprintf(`The following text contains several orders. Extract every one of them.
Text: %q

Available products: [%s].

Strict rules:
- Verbatim copy: customer name, phones, address and governorate must be copied exactly as they
  appear, even when misspelled. Never correct anything.
- Product matching: match each item to the closest available product and return its ID.
- Gifts: if an item is described as a gift or free, set isGift to true.
- Format: the output must be a JSON array of order objects following the given schema.`, text, catalogList(catalog))
}
