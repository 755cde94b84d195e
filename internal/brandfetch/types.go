package brandfetch

// BrandData Brandfetch 返回的品牌信息（只保留用到的字段）
type BrandData struct {
	Name            string  `json:"name"`
	Domain          string  `json:"domain"`
	Description     string  `json:"description,omitempty"`
	LongDescription string  `json:"longDescription,omitempty"`
	Logos           []Logo  `json:"logos,omitempty"`
	Colors          []Color `json:"colors,omitempty"`
	Links           []Link  `json:"links,omitempty"`
	Company         Company `json:"company"`
}

type Logo struct {
	Type    string   `json:"type"`
	Theme   string   `json:"theme,omitempty"`
	Formats []Format `json:"formats,omitempty"`
}

type Format struct {
	Src    string `json:"src"`
	Format string `json:"format"`
}

type Color struct {
	Hex        string `json:"hex"`
	Type       string `json:"type,omitempty"`
	Brightness int    `json:"brightness,omitempty"`
}

type Link struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Company struct {
	Industries []Industry `json:"industries,omitempty"`
}

type Industry struct {
	Name string `json:"name"`
}

// LogoURL 优先 logo，其次 icon，再其次任意一个
func (b BrandData) LogoURL() string {
	for _, want := range []string{"logo", "icon", ""} {
		for _, l := range b.Logos {
			if want != "" && l.Type != want {
				continue
			}
			for _, f := range l.Formats {
				if f.Src != "" {
					return f.Src
				}
			}
		}
	}
	return ""
}

// Industry 第一个行业分类
func (b BrandData) Industry() string {
	if len(b.Company.Industries) > 0 {
		return b.Company.Industries[0].Name
	}
	return ""
}

// Summary 提供给 LLM 的精简视图
type Summary struct {
	Name        string  `json:"name"`
	Domain      string  `json:"domain"`
	Description string  `json:"description,omitempty"`
	LogoURL     string  `json:"logo_url,omitempty"`
	Industry    string  `json:"industry,omitempty"`
	Colors      []Color `json:"colors,omitempty"`
	Links       []Link  `json:"links,omitempty"`
}

func (b BrandData) Summary() Summary {
	desc := b.Description
	if desc == "" {
		desc = b.LongDescription
	}
	return Summary{
		Name:        b.Name,
		Domain:      b.Domain,
		Description: desc,
		LogoURL:     b.LogoURL(),
		Industry:    b.Industry(),
		Colors:      b.Colors,
		Links:       b.Links,
	}
}
