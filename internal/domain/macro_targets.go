package domain

// MacroTargets is the value type for daily nutrition goals. It has no
// identity of its own: the calculator produces a fresh one on every
// invocation and holders replace it wholesale, never mutate it in place.
type MacroTargets struct {
	DailyCal     float64 `bson:"daily_cal" json:"daily_cal"`       // kilocalories
	Carbohydrate float64 `bson:"carbohydrate" json:"carbohydrate"` // grams
	Protein      float64 `bson:"protein" json:"protein"`           // grams
	Fat          float64 `bson:"fat" json:"fat"`                   // grams
	Sugar        float64 `bson:"sugar" json:"sugar"`               // grams
}
