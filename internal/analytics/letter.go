package analytics

// 百分比下限 → 字母等级，按下限降序
var letterCutoffs = []struct {
	min    float64
	letter string
}{
	{97, "A+"},
	{93, "A"},
	{90, "A-"},
	{87, "B+"},
	{83, "B"},
	{80, "B-"},
	{77, "C+"},
	{73, "C"},
	{70, "C-"},
	{67, "D+"},
	{60, "D"},
}

var letterPoints = map[string]float64{
	"A+": 4.0, "A": 4.0, "A-": 3.7,
	"B+": 3.3, "B": 3.0, "B-": 2.7,
	"C+": 2.3, "C": 2.0, "C-": 1.7,
	"D+": 1.3, "D": 1.0, "F": 0.0,
}

// LetterFor 百分比对应的字母等级
func LetterFor(avg float64) string {
	for _, c := range letterCutoffs {
		if avg >= c.min {
			return c.letter
		}
	}
	return "F"
}

// LetterPoints 字母等级对应的绩点，未知等级为 0
func LetterPoints(letter string) float64 {
	return letterPoints[letter]
}
