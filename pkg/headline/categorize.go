package headline

import "strings"

// categoryKeywords drives the title classifier. First category with a keyword
// hit wins, so the order below matters: more specific topics come before the
// catch-all international bucket. Keywords cover both Japanese and English
// titles since the site archives both.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{CategoryPolitics, []string{
		"政治", "選挙", "内閣", "首相", "国会", "政府", "大統領", "議員",
		"election", "parliament", "minister", "government", "president",
	}},
	{CategoryEconomy, []string{
		"経済", "株価", "円安", "円高", "日銀", "金利", "物価", "景気", "企業", "market",
		"economy", "stocks", "inflation", "trade", "funding",
	}},
	{CategoryTechnology, []string{
		"AI", "人工知能", "半導体", "IT", "アプリ", "スマホ", "テクノロジー", "サイバー",
		"tech", "software", "chip", "robot",
	}},
	{CategorySports, []string{
		"野球", "サッカー", "五輪", "オリンピック", "大谷", "スポーツ", "優勝", "試合",
		"olympic", "football", "baseball", "tournament",
	}},
	{CategoryEntertainment, []string{
		"映画", "ドラマ", "音楽", "芸能", "アニメ", "俳優", "アイドル",
		"movie", "music", "celebrity", "anime",
	}},
	{CategoryScience, []string{
		"研究", "宇宙", "科学", "医療", "ワクチン", "気候", "地震", "台風",
		"science", "space", "climate", "vaccine", "weather",
	}},
	{CategoryInternational, []string{
		"米国", "中国", "韓国", "ロシア", "ウクライナ", "国連", "外交", "国際",
		"international", "ukraine", "russia",
	}},
}

// Categorize assigns a category to a headline title by keyword lookup.
// Titles with no keyword hit land in CategoryNone.
func Categorize(title string) Category {
	folded := strings.ToLower(title)
	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(folded, strings.ToLower(kw)) {
				return entry.category
			}
		}
	}
	return CategoryNone
}
