package ai

import (
	"encoding/json"
	"fmt"
)

const CatalogReportSystemPrompt = `You are a merchandising analyst for an online mobile phone and accessories store.
Analyze catalog statistics and provide insights on:
- Assortment balance across categories and price points
- Stock level alerts and reorder recommendations
- Promotion coverage and discount strategy
- Clear, actionable next steps for the store team
Keep responses to 3-4 paragraphs maximum.`

func formatCatalogPrompt(stats CatalogStats) string {
	jsonData, _ := json.MarshalIndent(stats, "", "  ")
	return fmt.Sprintf(`Analyze the following catalog statistics for the storefront:

%s

Please provide:
1. Key observations about the assortment and pricing
2. Products or categories that need stock attention
3. Recommendations for upcoming promotions
4. Actionable next steps for the merchandising team`, string(jsonData))
}
