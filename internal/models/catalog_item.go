package models

import (
	"strings"

	"github.com/autoluxe/internal/constants"
)

// CatalogKind 商品类目种类，每种对应独立数据表
type CatalogKind string

const (
	KindProduct        CatalogKind = "Product"
	KindGadget         CatalogKind = "Gadget"
	KindFragrance      CatalogKind = "Fragrance"
	KindCarCareService CatalogKind = "CarCareService"
)

// CatalogKinds 全部类目种类（统一列表按此顺序拼接）
var CatalogKinds = []CatalogKind{
	KindProduct,
	KindGadget,
	KindFragrance,
	KindCarCareService,
}

// Valid 是否为已知种类
func (k CatalogKind) Valid() bool {
	switch k {
	case KindProduct, KindGadget, KindFragrance, KindCarCareService:
		return true
	}
	return false
}

// Table 对应的数据表
func (k CatalogKind) Table() string {
	switch k {
	case KindGadget:
		return "gadgets"
	case KindFragrance:
		return "fragrances"
	case KindCarCareService:
		return "car_care_services"
	default:
		return "products"
	}
}

// Folder 图片存储目录
func (k CatalogKind) Folder() string {
	switch k {
	case KindGadget:
		return "gadgets"
	case KindFragrance:
		return "fragrances"
	case KindCarCareService:
		return "carCareServices"
	default:
		return "products"
	}
}

// UniqueName 该种类名称是否要求唯一
func (k CatalogKind) UniqueName() bool {
	return k == KindFragrance
}

// ParseCartCategory 将购物车请求中的 category 映射为类目种类
func ParseCartCategory(category string) (CatalogKind, bool) {
	switch strings.TrimSpace(category) {
	case constants.CategoryProduct, constants.CategoryInterior, constants.CategoryExterior, constants.CategoryTest:
		return KindProduct, true
	case constants.CategoryGadget, constants.CategoryGadgets:
		return KindGadget, true
	case constants.CategoryFragrance:
		return KindFragrance, true
	case constants.CategoryCarCare, constants.CategoryCarCareService:
		return KindCarCareService, true
	}
	return "", false
}

// ParseDetailCategory 商品详情查询使用的 category 映射
func ParseDetailCategory(category string) (CatalogKind, bool) {
	switch strings.TrimSpace(category) {
	case constants.CategoryTest, constants.CategoryInterior, constants.CategoryExterior:
		return KindProduct, true
	case constants.CategoryGadgets:
		return KindGadget, true
	case constants.CategoryFragrance:
		return KindFragrance, true
	case constants.CategoryCarCare:
		return KindCarCareService, true
	}
	return "", false
}

// CatalogItem 商品（四个种类共用结构，按种类分表存储）
type CatalogItem struct {
	Base
	Name        string      `gorm:"type:varchar(255);not null" json:"name"`                // 名称
	Description string      `gorm:"type:text;not null;default:''" json:"description"`      // 描述
	Price       Money       `gorm:"type:decimal(20,2);not null;default:0" json:"price"`    // 价格
	Category    string      `gorm:"type:varchar(100);not null;default:''" json:"category"` // 分类标签
	Stock       int         `gorm:"not null;default:0" json:"stock"`                       // 库存
	Images      StringArray `gorm:"type:json" json:"images"`                               // 图片地址
	Kind        CatalogKind `gorm:"-" json:"kind"`                                         // 种类（不落库，由表决定）
}

// Label 展示名称（用于提示信息）
func (k CatalogKind) Label() string {
	switch k {
	case KindGadget:
		return "Gadget"
	case KindFragrance:
		return "Fragrance"
	case KindCarCareService:
		return "Car care service"
	default:
		return "Product"
	}
}
