package layout

// 该文件定义排版输入与排版结果，供分页引擎、渲染器与调试 JSON 共用。
// 所有坐标与尺寸均以 pt 为单位，原点位于页面左下角，Y 为文字基线。

// Book 是分页引擎的输入：标题、按文档顺序排列的纯文本章节以及可选目录。
type Book struct {
	Title    string
	Meta     DocumentMeta
	Sections []string
	TOC      []Entry
}

// Document 保存排版后的页面、章节跨度与目录。
type Document struct {
	Pages    []Page         `json:"pages"`
	Meta     DocumentMeta   `json:"meta"`
	Sections []SectionSpan  `json:"sections"`
	Outline  []OutlineEntry `json:"outline,omitempty"`
}

// Page 记录页面尺寸、边距与可直接渲染的行。
// Footer 单独保存，不参与正文的分页计算。
type Page struct {
	Width  float64          `json:"width"`
	Height float64          `json:"height"`
	Margin Margin           `json:"margin"`
	Lines  []PositionedLine `json:"lines"`
	Footer []PositionedLine `json:"footer,omitempty"`
}

// Margin 以 pt 为单位。
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// PositionedLine 表示一个已经排好坐标的文本行。
type PositionedLine struct {
	Text     string  `json:"text"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	FontSize float64 `json:"fontSize"`
	Bold     bool    `json:"bold,omitempty"`
}

// SectionSpan 记录某个输入章节落在哪些页上（页码从 1 开始，含标题页）。
// 空白章节 Skipped 为 true，FirstPage/LastPage 为 0。
type SectionSpan struct {
	Index     int  `json:"index"`
	FirstPage int  `json:"firstPage"`
	LastPage  int  `json:"lastPage"`
	Lines     int  `json:"lines"`
	Skipped   bool `json:"skipped,omitempty"`
}

// OutlineEntry 是解析出页码后的目录节点。
type OutlineEntry struct {
	Title    string         `json:"title"`
	Page     int            `json:"page"`
	Children []OutlineEntry `json:"children,omitempty"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}

// PageCount returns the number of pages including the title page.
func (d *Document) PageCount() int {
	if d == nil {
		return 0
	}
	return len(d.Pages)
}
