package generation

import (
	"fmt"

	"github.com/azhengyongqin/brandpilot/internal/repository"
)

const (
	defaultImageColor = "#FF6B00"
	defaultVideoColor = "#000000"
)

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// MarketingImagePrompt 产品图 -> 营销图的提示词
func MarketingImagePrompt(b repository.Brand) string {
	name := orDefault(b.BrandName, "Brand")
	vibe := orDefault(b.CompanyVibe, "Professional and modern")
	color := b.PrimaryColor(defaultImageColor)

	return fmt.Sprintf(`Transform this product image into a professional marketing graphic for social media.

REQUIREMENTS:
- Add the brand name "%[1]s" prominently in bold, modern typography
- Create a lifestyle scene with a person naturally holding/using the product
- Style: %[2]s, Instagram-worthy, authentic UGC aesthetic
- Use brand color %[3]s as an accent in the design
- Add subtle design elements (shapes, gradients) that complement the brand
- Natural lighting, clean background
- The person should look genuine and happy, not like a professional model
- Make it look like a high-quality social media post

TEXT TO ADD:
- Brand name: "%[1]s" (large, bold, prominent)
- Optional tagline area at bottom

STYLE:
- Modern, clean, professional
- %[2]s
- Social media ready (Instagram/Facebook)
- Eye-catching but authentic

OUTPUT: A complete marketing graphic with the product, person, and brand name clearly visible.`, name, vibe, color)
}

// VideoPrompt 产品图 -> 短视频的提示词
func VideoPrompt(b repository.Brand) string {
	name := orDefault(b.BrandName, "Brand")
	vibe := orDefault(b.CompanyVibe, "Professional and modern")
	industry := orDefault(b.Industry, "General")
	audience := orDefault(b.TargetAudience, "General audience")
	product := orDefault(b.ProductService, "products")
	color := b.PrimaryColor(defaultVideoColor)

	return fmt.Sprintf(`Create a professional marketing video for %[1]s.

BRAND CONTEXT:
- Brand: %[1]s
- Industry: %[2]s
- Vibe: %[3]s
- Target Audience: %[4]s
- Product/Service: %[5]s
- Primary Color: %[6]s

VIDEO REQUIREMENTS:
- Start with the product clearly visible and in focus
- Add subtle, elegant motion to bring the product to life
- Create a smooth, professional camera movement (slow zoom or pan)
- Maintain the %[3]s aesthetic throughout
- Keep the focus on the product as the hero element
- Add subtle ambient lighting effects that enhance the product
- The movement should feel premium and intentional

STYLE:
- Modern, clean, and professional
- Social media ready (Instagram/TikTok quality)
- Smooth, cinematic motion
- %[3]s aesthetic

OUTPUT: A 5-8 second professional marketing video showcasing the product with elegant motion.`, name, industry, vibe, audience, product, color)
}
