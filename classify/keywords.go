// Package classify scores video transcripts against fixed keyword categories
// and assigns each video a primary category by keyword density.
package classify

// Category pairs a category name with its keyword set. The package-level
// Categories slice fixes the enumeration order used for tie-breaking.
type Category struct {
	Name     string
	Keywords []string
}

// medicalKeywords covers illness, treatment and clinical vocabulary.
var medicalKeywords = []string{
	"病気", "医療", "治療", "難病", "がん", "ガン", "癌", "感染症", "手術", "症状", "薬", "病院",
	"発熱", "咳", "喘息", "糖尿病", "高血圧", "心臓", "脳卒中", "認知症",
	"アレルギー", "感冒", "肝臓", "腎臓", "骨折", "腫瘍", "感染", "コロナ", "インフル",
	"花粉症", "検診", "検査", "MRI", "CT", "内視鏡", "注射", "輸血", "麻酔", "投薬", "診断",
	"医師", "看護", "救急", "救命", "クリニック", "医大", "ワクチン", "リハビリ", "食中毒",
	"重症", "軽症", "腹痛", "命に関わる", "死に至るケース", "意識不明", "生死の境をさまよう",
	"入院", "退院", "発症", "ウイルス", "菌", "細菌", "免疫", "炎症", "完治", "回復",
}

// legalKeywords covers crime, prosecution and other legal vocabulary.
var legalKeywords = []string{
	"殺人", "殺害", "傷害", "暴力", "暴行", "強盗", "窃盗", "盗難", "詐欺", "横領",
	"レイプ", "強制わいせつ", "児童虐待", "痴漢", "ストーキング",
	"麻薬", "覚醒剤", "大麻", "違法薬物",
	"逮捕", "起訴", "容疑者", "被告", "判決", "有罪", "無罪", "懲役", "罰金",
	"弁護士", "検察", "裁判", "裁判所", "法廷", "法律", "違法", "犯罪",
	"交通事故", "飲酒運転", "速度超過", "ひき逃げ", "無免許運転",
	"贈賄", "受賄", "汚職", "背任", "公金流用",
	"告発", "告訴", "証人", "証拠", "警察", "捜査", "送検", "懲戒", "過失",
}

// dailySurprisingKeywords covers mysteries, miracles, dramatic reveals and
// other surprising everyday events.
var dailySurprisingKeywords = []string{
	"謎", "不可解", "怪現象", "怪奇", "超自然", "幽霊", "心霊", "UFO", "宇宙人",
	"ミステリー", "不思議", "摩訶不思議", "意外", "驚き", "ビックリ",
	"奇跡", "奇跡的", "幸運", "ラッキー", "運が良い", "偶然", "九死に一生",
	"運命", "宿命", "運勢", "因縁", "呪い", "怨念",
	"衝撃", "驚愕", "愕然", "仰天", "発見", "秘密", "隠していた", "判明",
	"発覚", "露見", "明かされた", "ついに判明", "真実",
	"恋愛", "浮気", "離婚", "親子", "兄弟", "姉妹", "夫婦", "家族関係", "相続",
	"動物", "犬", "猫", "馬", "牛", "象", "ライオン", "サメ", "クマ", "蛇",
	"野生動物", "ペット", "野性化", "襲撃",
	"地震", "津波", "火山", "台風", "洪水", "暴風", "竜巻", "雪崩", "土砂崩れ",
	"自然災害", "災害", "被災", "被害",
	"大金", "宝くじ", "一攫千金", "億万長者", "成功", "失敗", "逆転", "人生逆転",
}

// Categories is the fixed, ordered category set. It is constructed once at
// process start and never mutated; the slice order decides ties when two
// categories score the same density.
var Categories = []Category{
	{Name: "medical", Keywords: medicalKeywords},
	{Name: "legal", Keywords: legalKeywords},
	{Name: "daily_surprising", Keywords: dailySurprisingKeywords},
}

// CategoryNames returns the category names in their fixed order.
func CategoryNames() []string {
	names := make([]string, 0, len(Categories))
	for _, c := range Categories {
		names = append(names, c.Name)
	}
	return names
}

func findCategory(name string) (Category, bool) {
	for _, c := range Categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}
