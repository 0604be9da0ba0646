package locale

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	keyContributions = "%d contributions"
	keyYearTotal     = "%d contributions in the last year"
	keyLess          = "Less"
	keyMore          = "More"
)

func init() {
	must(message.Set(language.English, keyContributions,
		plural.Selectf(1, "%d",
			"=1", "%d contribution",
			"other", "%d contributions")))
	must(message.Set(language.English, keyYearTotal,
		plural.Selectf(1, "%d",
			"=1", "%d contribution in the last year",
			"other", "%d contributions in the last year")))
	must(message.SetString(language.English, keyLess, "Less"))
	must(message.SetString(language.English, keyMore, "More"))

	must(message.Set(language.Russian, keyContributions,
		plural.Selectf(1, "%d",
			"one", "%d вклад",
			"few", "%d вклада",
			"many", "%d вкладов",
			"other", "%d вклада")))
	must(message.Set(language.Russian, keyYearTotal,
		plural.Selectf(1, "%d",
			"one", "%d вклад за последний год",
			"few", "%d вклада за последний год",
			"many", "%d вкладов за последний год",
			"other", "%d вклада за последний год")))
	must(message.SetString(language.Russian, keyLess, "Меньше"))
	must(message.SetString(language.Russian, keyMore, "Больше"))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
