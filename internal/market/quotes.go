package market

import "time"

var quotes = [...]string{
	"计划你的交易，交易你的计划。",
	"截断亏损，让利润奔跑。",
	"市场保持非理性的时间可能比你保持偿付能力的时间更长。",
	"风险来自于不知道自己在做什么。",
	"在交易中，耐心是一种美德，更是一种 edge。",
	"不要预测市场，要跟随市场。",
	"成功的交易大约是 10% 的技术，和 90% 的纪律。",
	"趋势是你的朋友，直到它结束。",
	"保住本金是第一原则。",
	"每一笔交易都只是一个概率游戏。",
	"即使在最动荡的市场中，也要保持内心的平静。",
	"永远敬畏市场。",
	"如果你不能控制情绪，你就不能控制金钱。",
	"复利是世界第八大奇迹，在交易中也是如此。",
}

// Quotes returns the rotation list.
func Quotes() []string {
	out := make([]string, len(quotes))
	copy(out, quotes[:])
	return out
}

// DayOfYear returns the calendar day of today in its own location, with Jan 1 = 1.
func DayOfYear(today time.Time) int {
	return today.YearDay()
}

// QuoteOfDay picks the quote at DayOfYear(today) mod len(quotes).
func QuoteOfDay(today time.Time) string {
	return quotes[DayOfYear(today)%len(quotes)]
}
