package dto

import "github.com/azhengyongqin/brandpilot/internal/repository"

// SaveBrandRequest 手动保存品牌
type SaveBrandRequest struct {
	ConversationID string                  `json:"conversation_id,omitempty" example:"conv_3f2a9c0d1e4b5a67"`
	BrandName      string                  `json:"brand_name" binding:"required" example:"Nike"`
	Domain         string                  `json:"domain" binding:"required" example:"nike.com"`
	LogoURL        string                  `json:"logo_url,omitempty"`
	ProductService string                  `json:"product_service,omitempty" example:"Athletic footwear and apparel"`
	CompanyVibe    string                  `json:"company_vibe,omitempty" example:"Bold & Athletic"`
	TargetAudience string                  `json:"target_audience,omitempty" example:"Athletes and active lifestyle consumers"`
	Industry       string                  `json:"industry,omitempty" example:"Sportswear"`
	Description    string                  `json:"description,omitempty"`
	Colors         []repository.BrandColor `json:"colors,omitempty"`
	SocialLinks    []repository.SocialLink `json:"social_links,omitempty"`
}

// ToBrand 转为品牌实体
func (r SaveBrandRequest) ToBrand(userID uint64) repository.Brand {
	return repository.Brand{
		UserID:         userID,
		ConversationID: r.ConversationID,
		BrandName:      r.BrandName,
		Domain:         r.Domain,
		LogoURL:        r.LogoURL,
		ProductService: r.ProductService,
		CompanyVibe:    r.CompanyVibe,
		TargetAudience: r.TargetAudience,
		Industry:       r.Industry,
		Description:    r.Description,
		Colors:         r.Colors,
		SocialLinks:    r.SocialLinks,
	}
}

// BrandListResponse 品牌列表
type BrandListResponse struct {
	Brands         []repository.Brand `json:"brands"`
	ConversationID string             `json:"conversation_id,omitempty"`
}
