// Package seed holds the starter catalog loaded into fresh stores.
package seed

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"julianmorley.ca/con-plar/storefront/pkg/models"
	"julianmorley.ca/con-plar/storefront/pkg/store"
)

// seeded ids are derived from slugs so re-running against a durable store
// lines products up with categories that already exist
var namespace = uuid.MustParse("6f1c2b4e-8d4a-4f0e-9a57-3c2e1d0b9a61")

func seedID(kind, slug string) string {
	return uuid.NewSHA1(namespace, []byte(kind+":"+slug)).String()
}

var (
	mobilesID     = seedID("category", "mobile-phones")
	accessoriesID = seedID("category", "accessories")
	headphonesID  = seedID("category", "headphones-earbuds")
	chargersID    = seedID("category", "chargers-cables")
	casesID       = seedID("category", "cases-protection")
)

// Categories returns the seed category tree, parents first. CreatedAt is
// staggered the same way as Products.
func Categories(base time.Time) []models.Category {
	parent := accessoriesID
	categories := []models.Category{
		{
			ID: mobilesID, Slug: "mobile-phones", Name: "Mobile Phones",
			Description: "Latest smartphones from top brands",
			Image:       "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=400&h=300&fit=crop",
		},
		{
			ID: accessoriesID, Slug: "accessories", Name: "Accessories",
			Description: "Essential mobile accessories",
			Image:       "https://images.unsplash.com/photo-1601784551446-20c9e07cdbdb?w=400&h=300&fit=crop",
		},
		{
			ID: headphonesID, Slug: "headphones-earbuds", Name: "Headphones & Earbuds",
			Description: "Premium audio accessories",
			Image:       "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400&h=300&fit=crop",
			ParentID:    &parent,
		},
		{
			ID: chargersID, Slug: "chargers-cables", Name: "Chargers & Cables",
			Description: "Fast charging solutions",
			Image:       "https://images.unsplash.com/photo-1583863788434-e58a36330cf0?w=400&h=300&fit=crop",
			ParentID:    &parent,
		},
		{
			ID: casesID, Slug: "cases-protection", Name: "Cases & Protection",
			Description: "Protective cases and screen guards",
			Image:       "https://images.unsplash.com/photo-1601784551446-20c9e07cdbdb?w=400&h=300&fit=crop",
			ParentID:    &parent,
		},
	}

	for i := range categories {
		categories[i].CreatedAt = base.Add(time.Duration(i) * time.Second)
	}
	return categories
}

const unsplash = "https://images.unsplash.com/"

func img(id string) string {
	return unsplash + id + "?w=600&h=600&fit=crop"
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func optMoney(s string) *decimal.Decimal {
	d := money(s)
	return &d
}

// Products returns the seed catalog in display order. CreatedAt is staggered
// by one second per product starting at base.
func Products(base time.Time) []models.Product {
	products := []models.Product{
		{
			Slug: "iphone-15-pro-max-256gb", Name: "iPhone 15 Pro Max 256GB",
			Description:     "The ultimate iPhone with titanium design and A17 Pro chip",
			LongDescription: "Experience the power of the iPhone 15 Pro Max featuring a stunning titanium design, the revolutionary A17 Pro chip, and advanced camera capabilities. With ProMotion display technology and all-day battery life.",
			CategoryID:      mobilesID, Brand: "Apple", Model: "iPhone 15 Pro Max",
			Price: money("1199.00"),
			Image: img("photo-1695048133142-1a20484d2569"),
			Images: []string{
				img("photo-1695048133142-1a20484d2569"),
				img("photo-1695048133364-61e5e4ee0cd7"),
				img("photo-1695048071524-9e9f75c56c0f"),
			},
			InStock: true, StockQuantity: 45, Rating: optMoney("5.0"), ReviewCount: 234,
			Specifications: map[string]string{
				"screen":    "6.7-inch Super Retina XDR",
				"processor": "A17 Pro chip",
				"camera":    "48MP Main + 12MP Ultra Wide + 12MP Telephoto",
				"battery":   "Up to 29 hours video playback",
				"storage":   "256GB",
				"os":        "iOS 17",
			},
			Features:   []string{"Titanium design", "Action button", "ProMotion display", "Ceramic Shield", "5G capable"},
			IsFeatured: true, IsNew: true,
		},
		{
			Slug: "samsung-galaxy-s24-ultra", Name: "Samsung Galaxy S24 Ultra",
			Description:     "Premium Android flagship with S Pen and AI features",
			LongDescription: "The Samsung Galaxy S24 Ultra combines cutting-edge AI capabilities with a stunning display and S Pen functionality. Featuring the Snapdragon 8 Gen 3 processor and advanced camera system.",
			CategoryID:      mobilesID, Brand: "Samsung", Model: "Galaxy S24 Ultra",
			Price: money("1299.00"),
			Image: img("photo-1610945415295-d9bbf067e59c"),
			Images: []string{
				img("photo-1610945415295-d9bbf067e59c"),
				img("photo-1615473812748-71cbe1bfa337"),
			},
			InStock: true, StockQuantity: 32, Rating: optMoney("4.5"), ReviewCount: 189,
			Specifications: map[string]string{
				"screen":    "6.8-inch Dynamic AMOLED 2X",
				"processor": "Snapdragon 8 Gen 3",
				"camera":    "200MP Main + 50MP Telephoto + 12MP Ultra Wide + 10MP Telephoto",
				"battery":   "5000mAh",
				"storage":   "512GB",
				"os":        "Android 14",
			},
			Features:   []string{"S Pen included", "Galaxy AI", "Gorilla Glass Victus 2", "5G capable", "IP68 water resistant"},
			IsFeatured: true, IsNew: true,
		},
		{
			Slug: "google-pixel-8-pro", Name: "Google Pixel 8 Pro",
			Description:     "Pure Android experience with Google AI magic",
			LongDescription: "Experience the best of Google with the Pixel 8 Pro. Powered by Google Tensor G3 and featuring exceptional camera capabilities with AI-powered photo editing.",
			CategoryID:      mobilesID, Brand: "Google", Model: "Pixel 8 Pro",
			Price: money("899.00"), OriginalPrice: optMoney("999.00"),
			Image:   img("photo-1598327105666-5b89351aff97"),
			Images:  []string{img("photo-1598327105666-5b89351aff97")},
			InStock: true, StockQuantity: 28, Rating: optMoney("4.5"), ReviewCount: 156,
			Specifications: map[string]string{
				"screen":    "6.7-inch LTPO OLED",
				"processor": "Google Tensor G3",
				"camera":    "50MP Main + 48MP Ultra Wide + 48MP Telephoto",
				"battery":   "5050mAh",
				"storage":   "256GB",
				"os":        "Android 14",
			},
			Features:   []string{"Magic Eraser", "Best Take", "7 years of updates", "IP68 rated", "5G capable"},
			IsFeatured: true, IsOnSale: true,
		},
		{
			Slug: "airpods-pro-2nd-gen", Name: "AirPods Pro (2nd Gen)",
			Description:     "Active noise cancelling earbuds with spatial audio",
			LongDescription: "The AirPods Pro feature adaptive audio, active noise cancellation, and personalized spatial audio for an immersive listening experience.",
			CategoryID:      headphonesID, Brand: "Apple", Model: "AirPods Pro 2",
			Price:   money("249.00"),
			Image:   img("photo-1606841837239-c5a1a4a07af7"),
			Images:  []string{img("photo-1606841837239-c5a1a4a07af7")},
			InStock: true, StockQuantity: 67, Rating: optMoney("5.0"), ReviewCount: 412,
			Specifications: map[string]string{
				"type":         "In-ear wireless earbuds",
				"connectivity": "Bluetooth 5.3",
				"battery":      "Up to 6 hours (ANC on)",
				"features":     "Active Noise Cancellation, Transparency mode",
				"waterproof":   "IPX4",
			},
			Features:   []string{"Adaptive Audio", "Personalized Spatial Audio", "MagSafe charging", "Find My support"},
			IsFeatured: true,
		},
		{
			Slug: "sony-wh-1000xm5-headphones", Name: "Sony WH-1000XM5 Headphones",
			Description:     "Industry-leading noise cancelling over-ear headphones",
			LongDescription: "Experience exceptional sound quality and industry-leading noise cancellation with Sony's flagship headphones. Featuring 30-hour battery life and multipoint connection.",
			CategoryID:      headphonesID, Brand: "Sony", Model: "WH-1000XM5",
			Price: money("349.00"), OriginalPrice: optMoney("399.00"),
			Image: img("photo-1618366712010-f4ae9c647dcb"),
			Images: []string{
				img("photo-1618366712010-f4ae9c647dcb"),
				img("photo-1546435770-a3e426bf472b"),
			},
			InStock: true, StockQuantity: 54, Rating: optMoney("5.0"), ReviewCount: 567,
			Specifications: map[string]string{
				"type":         "Over-ear wireless headphones",
				"connectivity": "Bluetooth 5.2",
				"battery":      "Up to 30 hours",
				"drivers":      "30mm",
				"weight":       "250g",
			},
			Features:   []string{"Industry-leading ANC", "Multipoint connection", "LDAC support", "Speak-to-chat"},
			IsFeatured: true, IsOnSale: true,
		},
		{
			Slug: "samsung-galaxy-buds2-pro", Name: "Samsung Galaxy Buds2 Pro",
			Description:     "Premium wireless earbuds with intelligent ANC",
			LongDescription: "Enjoy premium sound quality with intelligent active noise cancellation and 360 audio. Perfect companion for your Galaxy devices.",
			CategoryID:      headphonesID, Brand: "Samsung", Model: "Galaxy Buds2 Pro",
			Price: money("199.00"), OriginalPrice: optMoney("229.00"),
			Image:   img("photo-1590658268037-6bf12165a8df"),
			Images:  []string{img("photo-1590658268037-6bf12165a8df")},
			InStock: true, StockQuantity: 89, Rating: optMoney("4.5"), ReviewCount: 298,
			Specifications: map[string]string{
				"type":         "In-ear wireless earbuds",
				"connectivity": "Bluetooth 5.3",
				"battery":      "Up to 5 hours (ANC on)",
				"drivers":      "10mm coaxial 2-way",
				"waterproof":   "IPX7",
			},
			Features: []string{"Intelligent ANC", "360 Audio", "Hi-Fi sound", "Auto Switch"},
			IsOnSale: true,
		},
		{
			Slug: "anker-65w-usb-c-charger", Name: "Anker 65W USB-C Charger",
			Description:     "Fast charging adapter with GaN technology",
			LongDescription: "Compact and powerful 65W USB-C charger with GaN technology. Charge your phone, tablet, and laptop with a single adapter.",
			CategoryID:      chargersID, Brand: "Anker", Model: "PowerPort III",
			Price:   money("49.99"),
			Image:   img("photo-1583863788434-e58a36330cf0"),
			Images:  []string{img("photo-1583863788434-e58a36330cf0")},
			InStock: true, StockQuantity: 156, Rating: optMoney("4.5"), ReviewCount: 445,
			Specifications: map[string]string{
				"power":         "65W",
				"ports":         "1x USB-C",
				"technology":    "GaN (Gallium Nitride)",
				"compatibility": "iPhone, iPad, MacBook, Samsung, etc.",
				"safety":        "MultiProtect safety system",
			},
			Features: []string{"GaN technology", "Compact design", "Universal compatibility", "Foldable plug"},
		},
		{
			Slug: "belkin-3-in-1-wireless-charger", Name: "Belkin 3-in-1 Wireless Charger",
			Description:     "Charge iPhone, Apple Watch, and AirPods simultaneously",
			LongDescription: "Elegant wireless charging solution for your Apple devices. Charges iPhone, Apple Watch, and AirPods all at once with MagSafe compatibility.",
			CategoryID:      chargersID, Brand: "Belkin", Model: "BoostCharge Pro",
			Price: money("129.99"), OriginalPrice: optMoney("149.99"),
			Image:   img("photo-1591290619762-c588b0b2f9d6"),
			Images:  []string{img("photo-1591290619762-c588b0b2f9d6")},
			InStock: true, StockQuantity: 43, Rating: optMoney("4.0"), ReviewCount: 178,
			Specifications: map[string]string{
				"charging":      "MagSafe 15W",
				"devices":       "iPhone + Apple Watch + AirPods",
				"design":        "Premium stainless steel",
				"certification": "Qi-certified",
			},
			Features: []string{"MagSafe compatible", "Charges 3 devices", "LED indicators", "Premium design"},
			IsOnSale: true,
		},
		{
			Slug: "otterbox-defender-series-case", Name: "OtterBox Defender Series Case",
			Description:     "Rugged protection for your iPhone 15 Pro",
			LongDescription: "Military-grade drop protection with multi-layer defense. Includes port covers to keep out dust and debris.",
			CategoryID:      casesID, Brand: "OtterBox", Model: "Defender Series",
			Price:   money("59.99"),
			Image:   img("photo-1601784551446-20c9e07cdbdb"),
			Images:  []string{img("photo-1601784551446-20c9e07cdbdb")},
			InStock: true, StockQuantity: 234, Rating: optMoney("5.0"), ReviewCount: 892,
			Specifications: map[string]string{
				"compatibility": "iPhone 15 Pro",
				"protection":    "Drop protection up to 3x military standard",
				"material":      "Polycarbonate shell + synthetic rubber slipcover",
				"features":      "Port covers",
			},
			Features: []string{"Multi-layer defense", "Port covers", "Raised edges", "Wireless charging compatible"},
		},
		{
			Slug: "spigen-liquid-air-case", Name: "Spigen Liquid Air Case",
			Description:     "Slim and flexible case with modern design",
			LongDescription: "Lightweight protection with a geometric pattern design. Provides excellent grip and shock absorption.",
			CategoryID:      casesID, Brand: "Spigen", Model: "Liquid Air",
			Price: money("19.99"), OriginalPrice: optMoney("24.99"),
			Image:   img("photo-1556656793-08538906a9f8"),
			Images:  []string{img("photo-1556656793-08538906a9f8")},
			InStock: true, StockQuantity: 421, Rating: optMoney("4.5"), ReviewCount: 1245,
			Specifications: map[string]string{
				"compatibility": "iPhone 15 / 15 Pro / 15 Pro Max",
				"material":      "Flexible TPU",
				"thickness":     "Slim profile",
				"texture":       "Geometric pattern",
			},
			Features: []string{"Slim design", "Air cushion technology", "Tactile buttons", "Wireless charging compatible"},
			IsOnSale: true,
		},
	}

	for i := range products {
		products[i].ID = seedID("product", products[i].Slug)
		products[i].CreatedAt = base.Add(time.Duration(i) * time.Second)
	}
	return products
}

// Target is what Load writes into
type Target interface {
	store.CategoryRepository
	store.ProductRepository
}

// Result counts what Load inserted and skipped
type Result struct {
	CategoriesCreated int
	ProductsCreated   int
	Skipped           int
}

// Load writes the seed catalog into target. Entries that already exist are
// skipped, so Load can run against a populated store.
func Load(ctx context.Context, target Target) (Result, error) {
	var res Result
	base := time.Now().UTC()

	for _, c := range Categories(base) {
		category := c
		err := target.CreateCategory(ctx, &category)
		switch {
		case err == nil:
			res.CategoriesCreated++
		case errors.Is(err, store.ErrConflict):
			res.Skipped++
		default:
			return res, errors.Wrapf(err, "seed category %s", c.Slug)
		}
	}

	for _, p := range Products(base) {
		product := p
		err := target.CreateProduct(ctx, &product)
		switch {
		case err == nil:
			res.ProductsCreated++
		case errors.Is(err, store.ErrConflict):
			res.Skipped++
		default:
			return res, errors.Wrapf(err, "seed product %s", p.Slug)
		}
	}

	log.WithFields(log.Fields{
		"categories": res.CategoriesCreated,
		"products":   res.ProductsCreated,
		"skipped":    res.Skipped,
	}).Info("Seed catalog loaded")
	return res, nil
}
