package agent

import (
	"context"
	"encoding/json"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/azhengyongqin/brandpilot/internal/apperr"
	"github.com/azhengyongqin/brandpilot/internal/repository"
)

const (
	toolLookupBrand      = "lookup_brand"
	toolSaveBrandProfile = "save_brand_profile"
)

var tools = []openai.Tool{
	{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        toolLookupBrand,
			Description: "Fetch brand data (name, logos, colors, links, industry) by website domain, stock ticker, ISIN or crypto symbol.",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"identifier": {Type: jsonschema.String, Description: "e.g. nike.com, NKE, US6541061031, BTC"},
				},
				Required: []string{"identifier"},
			},
		},
	},
	{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        toolSaveBrandProfile,
			Description: "Save the analyzed brand profile for this conversation. name and domain are required.",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"name":            {Type: jsonschema.String},
					"domain":          {Type: jsonschema.String, Description: "website domain, e.g. nike.com"},
					"logo_url":        {Type: jsonschema.String},
					"description":     {Type: jsonschema.String},
					"industry":        {Type: jsonschema.String},
					"company_vibe":    {Type: jsonschema.String},
					"target_audience": {Type: jsonschema.String},
					"product_service": {Type: jsonschema.String},
					"colors": {
						Type: jsonschema.Array,
						Items: &jsonschema.Definition{
							Type: jsonschema.Object,
							Properties: map[string]jsonschema.Definition{
								"name": {Type: jsonschema.String},
								"hex":  {Type: jsonschema.String, Description: "#RRGGBB"},
							},
							Required: []string{"hex"},
						},
					},
					"social_links": {
						Type: jsonschema.Array,
						Items: &jsonschema.Definition{
							Type: jsonschema.Object,
							Properties: map[string]jsonschema.Definition{
								"platform": {Type: jsonschema.String},
								"url":      {Type: jsonschema.String},
							},
							Required: []string{"platform", "url"},
						},
					},
				},
				Required: []string{"name", "domain"},
			},
		},
	},
}

type lookupArgs struct {
	Identifier string `json:"identifier"`
}

// BrandProfile save_brand_profile 的参数
type BrandProfile struct {
	Name           string                  `json:"name"`
	Domain         string                  `json:"domain"`
	LogoURL        string                  `json:"logo_url"`
	Description    string                  `json:"description"`
	Industry       string                  `json:"industry"`
	CompanyVibe    string                  `json:"company_vibe"`
	TargetAudience string                  `json:"target_audience"`
	ProductService string                  `json:"product_service"`
	Colors         []repository.BrandColor `json:"colors"`
	SocialLinks    []repository.SocialLink `json:"social_links"`
}

// Validate name 与 domain 必填
func (p BrandProfile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return apperr.Validation("brand name is required")
	}
	if strings.TrimSpace(p.Domain) == "" {
		return apperr.Validation("brand domain is required")
	}
	return nil
}

// ToBrand 转为品牌实体
func (p BrandProfile) ToBrand(userID uint64, conversationID string) repository.Brand {
	colors := make([]repository.BrandColor, 0, len(p.Colors))
	for _, c := range p.Colors {
		if strings.TrimSpace(c.Hex) != "" {
			colors = append(colors, c)
		}
	}
	links := make([]repository.SocialLink, 0, len(p.SocialLinks))
	for _, l := range p.SocialLinks {
		if strings.TrimSpace(l.URL) != "" {
			links = append(links, l)
		}
	}
	return repository.Brand{
		UserID:         userID,
		ConversationID: conversationID,
		BrandName:      p.Name,
		Domain:         p.Domain,
		LogoURL:        p.LogoURL,
		ProductService: p.ProductService,
		CompanyVibe:    p.CompanyVibe,
		TargetAudience: p.TargetAudience,
		Industry:       p.Industry,
		Description:    p.Description,
		Colors:         colors,
		SocialLinks:    links,
	}
}

// turn 一次 Respond 调用内的工具执行上下文
type turn struct {
	userID         uint64
	conversationID string
	saved          *repository.Brand
}

// runTool 执行工具调用；错误以 {"error": ...} 的形式回给模型，不中断对话
func (a *Agent) runTool(ctx context.Context, t *turn, call openai.ToolCall) string {
	var (
		result any
		err    error
	)
	switch call.Function.Name {
	case toolLookupBrand:
		result, err = a.lookupBrand(ctx, call.Function.Arguments)
	case toolSaveBrandProfile:
		result, err = a.saveBrandProfile(ctx, t, call.Function.Arguments)
	default:
		err = apperr.Validation("unknown tool: " + call.Function.Name)
	}
	if err != nil {
		result = map[string]string{"error": err.Error()}
	}

	b, mErr := json.Marshal(result)
	if mErr != nil {
		return `{"error":"failed to encode tool result"}`
	}
	return string(b)
}

func (a *Agent) lookupBrand(ctx context.Context, raw string) (any, error) {
	var args lookupArgs
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, apperr.Validation("invalid arguments: " + err.Error())
	}
	data, err := a.lookup.Lookup(ctx, args.Identifier)
	if err != nil {
		return nil, err
	}
	return data.Summary(), nil
}

func (a *Agent) saveBrandProfile(ctx context.Context, t *turn, raw string) (any, error) {
	var p BrandProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, apperr.Validation("invalid arguments: " + err.Error())
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	saved, err := a.brands.Save(ctx, p.ToBrand(t.userID, t.conversationID))
	if err != nil {
		return nil, err
	}
	t.saved = saved
	return map[string]any{"saved": true, "brand_id": saved.ID}, nil
}
