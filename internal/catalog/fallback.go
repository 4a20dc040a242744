package catalog

import "github.com/shopspring/decimal"

// fallbackProducts keeps the storefront browsable when the store API is
// unreachable. Checkout still requires connectivity.
func fallbackProducts() []Product {
	return []Product{
		{
			ID:            "1",
			Name:          "Premium Leather Handbag",
			Description:   "Elegant handcrafted leather bag made with premium materials and attention to detail",
			Price:         decimal.NewFromFloat(299.99),
			Category:      "Handbags",
			StockQuantity: 10,
			ImageURL:      "https://images.unsplash.com/photo-1548036328-c9fa89d128fa?w=400&h=400&fit=crop",
			IsAvailable:   true,
		},
		{
			ID:            "2",
			Name:          "Classic Crossbody",
			Description:   "Practical and comfortable crossbody bag perfect for daily use and adventures",
			Price:         decimal.NewFromFloat(199.99),
			Category:      "Crossbody",
			StockQuantity: 15,
			ImageURL:      "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=400&h=400&fit=crop",
			IsAvailable:   true,
		},
		{
			ID:            "3",
			Name:          "Evening Clutch",
			Description:   "Sophisticated clutch bag designed for special occasions and elegant evenings",
			Price:         decimal.NewFromFloat(399.99),
			Category:      "Clutch",
			StockQuantity: 8,
			ImageURL:      "https://images.unsplash.com/photo-1594223274512-ad4803739b7c?w=400&h=400&fit=crop",
			IsAvailable:   true,
		},
		{
			ID:            "4",
			Name:          "Travel Tote",
			Description:   "Spacious and durable tote bag perfect for travel and everyday essentials",
			Price:         decimal.NewFromFloat(499.99),
			Category:      "Travel",
			StockQuantity: 5,
			ImageURL:      "https://images.unsplash.com/photo-1584917865442-de89df76afd3?w=400&h=400&fit=crop",
			IsAvailable:   true,
		},
		{
			ID:            "5",
			Name:          "Urban Backpack",
			Description:   "Modern and functional backpack designed for urban lifestyle and comfort",
			Price:         decimal.NewFromFloat(249.99),
			Category:      "Backpack",
			StockQuantity: 12,
			ImageURL:      "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=400&h=400&fit=crop",
			IsAvailable:   true,
		},
		{
			ID:            "6",
			Name:          "Mini Shoulder Bag",
			Description:   "Compact and stylish mini bag perfect for essentials and casual outings",
			Price:         decimal.NewFromFloat(179.99),
			Category:      "Mini Bags",
			StockQuantity: 7,
			ImageURL:      "https://images.unsplash.com/photo-1594223274512-ad4803739b7c?w=400&h=400&fit=crop",
			IsAvailable:   true,
		},
	}
}
