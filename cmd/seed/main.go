package main

import (
	"time"

	"github.com/Deekshith-46/brain-buzz/internal/config"
	"github.com/Deekshith-46/brain-buzz/internal/constants"
	"github.com/Deekshith-46/brain-buzz/internal/logger"
	"github.com/Deekshith-46/brain-buzz/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("failed to migrate database: %v", err)
	}

	categories := []models.Category{
		{Name: "Banking", SortOrder: 1},
		{Name: "SSC", SortOrder: 2},
		{Name: "Railways", SortOrder: 3},
	}
	categoryIDs := map[string]uint{}
	for i := range categories {
		cat := categories[i]
		var existing models.Category
		if err := models.DB.Where("name = ?", cat.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("failed to create category %s: %v", cat.Name, err)
				continue
			}
			stdLog.Printf("created category: %s", cat.Name)
			categoryIDs[cat.Name] = cat.ID
			continue
		}
		stdLog.Printf("category already exists: %s", existing.Name)
		categoryIDs[existing.Name] = existing.ID
	}

	subCategories := []models.SubCategory{
		{CategoryID: categoryIDs["Banking"], Name: "IBPS PO", SortOrder: 1},
		{CategoryID: categoryIDs["Banking"], Name: "SBI Clerk", SortOrder: 2},
		{CategoryID: categoryIDs["SSC"], Name: "SSC CGL", SortOrder: 1},
		{CategoryID: categoryIDs["Railways"], Name: "RRB NTPC", SortOrder: 1},
	}
	for i := range subCategories {
		sub := subCategories[i]
		if sub.CategoryID == 0 {
			continue
		}
		var existing models.SubCategory
		if err := models.DB.Where("category_id = ? AND name = ?", sub.CategoryID, sub.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&sub).Error; err != nil {
				stdLog.Printf("failed to create sub-category %s: %v", sub.Name, err)
				continue
			}
			stdLog.Printf("created sub-category: %s", sub.Name)
			continue
		}
		stdLog.Printf("sub-category already exists: %s", existing.Name)
	}

	languages := []models.Language{
		{Name: "English", Code: "en"},
		{Name: "Hindi", Code: "hi"},
	}
	languageIDs := map[string]uint{}
	for i := range languages {
		lang := languages[i]
		var existing models.Language
		if err := models.DB.Where("name = ?", lang.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&lang).Error; err != nil {
				stdLog.Printf("failed to create language %s: %v", lang.Name, err)
				continue
			}
			stdLog.Printf("created language: %s", lang.Name)
			languageIDs[lang.Name] = lang.ID
			continue
		}
		stdLog.Printf("language already exists: %s", existing.Name)
		languageIDs[existing.Name] = existing.ID
	}

	percentage := constants.DiscountTypePercentage
	discountUntil := time.Now().AddDate(0, 1, 0)

	series := []models.TestSeries{
		{
			Name:           "IBPS PO Prelims Mock Pack",
			Description:    "Full-length prelims mocks with sectional analysis.",
			CategoryIDs:    models.UintArray{categoryIDs["Banking"]},
			LanguageIDs:    models.UintArray{languageIDs["English"], languageIDs["Hindi"]},
			MaxTests:           20,
			ValidityMonths:     12,
			BasePrice:          models.NewMoneyFromDecimal(decimal.NewFromInt(499)),
			DiscountType:       &percentage,
			DiscountValue:      models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
			DiscountValidUntil: &discountUntil,
			SortOrder:          1,
			IsActive:           true,
		},
		{
			Name:           "SSC CGL Tier-1 Test Series",
			Description:    "Latest pattern Tier-1 mocks.",
			CategoryIDs:    models.UintArray{categoryIDs["SSC"]},
			LanguageIDs:    models.UintArray{languageIDs["English"]},
			MaxTests:       30,
			ValidityMonths: 6,
			BasePrice:      models.NewMoneyFromDecimal(decimal.NewFromInt(399)),
			SortOrder:      2,
			IsActive:       true,
		},
	}
	for i := range series {
		item := series[i]
		var existing models.TestSeries
		if err := models.DB.Where("name = ?", item.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&item).Error; err != nil {
				stdLog.Printf("failed to create test series %s: %v", item.Name, err)
				continue
			}
			stdLog.Printf("created test series: %s", item.Name)
			continue
		}
		stdLog.Printf("test series already exists: %s", existing.Name)
	}

	courses := []models.Course{
		{
			Name:           "Banking Foundation Batch",
			Description:    "Quant, reasoning and English from scratch.",
			CategoryIDs:    models.UintArray{categoryIDs["Banking"]},
			LanguageIDs:    models.UintArray{languageIDs["English"]},
			ValidityMonths: 12,
			BasePrice:      models.NewMoneyFromDecimal(decimal.NewFromInt(1999)),
			SortOrder:      1,
			IsActive:       true,
		},
	}
	for i := range courses {
		item := courses[i]
		var existing models.Course
		if err := models.DB.Where("name = ?", item.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&item).Error; err != nil {
				stdLog.Printf("failed to create course %s: %v", item.Name, err)
				continue
			}
			stdLog.Printf("created course: %s", item.Name)
			continue
		}
		stdLog.Printf("course already exists: %s", existing.Name)
	}

	ebooks := []models.EBook{
		{
			Title:       "Current Affairs Yearly Capsule",
			Description: "Twelve months of exam-relevant current affairs.",
			FileURL:     "/files/ca-yearly-capsule.pdf",
			CategoryIDs: models.UintArray{categoryIDs["Banking"], categoryIDs["SSC"]},
			LanguageIDs: models.UintArray{languageIDs["English"]},
			BasePrice:   models.NewMoneyFromDecimal(decimal.NewFromInt(99)),
			IsActive:    true,
		},
		{
			Title:       "Free Quant Formula Book",
			Description: "Formula reference, free to download.",
			FileURL:     "/files/quant-formulas.pdf",
			LanguageIDs: models.UintArray{languageIDs["English"]},
			BasePrice:   models.NewMoneyFromDecimal(decimal.NewFromInt(0)),
			IsFree:      true,
			IsActive:    true,
		},
	}
	for i := range ebooks {
		item := ebooks[i]
		var existing models.EBook
		if err := models.DB.Where("title = ?", item.Title).First(&existing).Error; err != nil {
			if err := models.DB.Create(&item).Error; err != nil {
				stdLog.Printf("failed to create ebook %s: %v", item.Title, err)
				continue
			}
			stdLog.Printf("created ebook: %s", item.Title)
			continue
		}
		stdLog.Printf("ebook already exists: %s", existing.Title)
	}

	coupons := []models.Coupon{
		{
			Code:          "WELCOME10",
			DiscountType:  constants.DiscountTypePercentage,
			DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
			MaxDiscount:   models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
			MaxUses:       0,
			ValidFrom:     time.Now(),
			ValidUntil:    time.Now().AddDate(1, 0, 0),
			ApplicableItems: models.ApplicabilityArray{
				{ItemType: "all"},
			},
			IsActive: true,
		},
		{
			Code:              "EXAM50",
			DiscountType:      constants.DiscountTypeFixed,
			DiscountValue:     models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
			MinPurchaseAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(300)),
			MaxUses:           500,
			ValidFrom:         time.Now(),
			ValidUntil:        time.Now().AddDate(0, 3, 0),
			ApplicableItems: models.ApplicabilityArray{
				{ItemType: constants.ItemTypeTestSeries},
			},
			IsActive: true,
		},
	}
	for i := range coupons {
		item := coupons[i]
		var existing models.Coupon
		if err := models.DB.Where("code = ?", item.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&item).Error; err != nil {
				stdLog.Printf("failed to create coupon %s: %v", item.Code, err)
				continue
			}
			stdLog.Printf("created coupon: %s", item.Code)
			continue
		}
		stdLog.Printf("coupon already exists: %s", existing.Code)
	}

	stdLog.Printf("seed complete")
}
