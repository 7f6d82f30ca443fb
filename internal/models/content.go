package models

// Типы витрины: данные приходят с удалённого JSON-хоста и отдаются
// клиенту как есть, контракт ограничивается формой.

// Bookmaker — букмекер, к которому ведёт карточка прогноза.
type Bookmaker struct {
	Name string `json:"name"`
	Logo string `json:"logo"`
	Link string `json:"link"`
}

// Prediction — один прогноз на матч.
type Prediction struct {
	ID         int       `json:"id"`
	HomeTeam   string    `json:"homeTeam"`
	AwayTeam   string    `json:"awayTeam"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	Insight    string    `json:"insight"`
	Odds       string    `json:"odds"`
	Confidence string    `json:"confidence"`
	Analysis   string    `json:"analysis,omitempty"`
	Bookmaker  Bookmaker `json:"bookmaker"`
}

// CardData — карточка тарифного плана на главной странице.
type CardData struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Price       string   `json:"price,omitempty"`
	Period      string   `json:"period,omitempty"`
	Description string   `json:"description"`
	Features    []string `json:"features,omitempty"`
	Icon        string   `json:"icon"`
	Color       string   `json:"color"`
	ButtonText  string   `json:"buttonText"`
}

// ResultMatch — сыгранный матч с итогом прогноза.
type ResultMatch struct {
	ID       int    `json:"id"`
	HomeTeam string `json:"homeTeam"`
	AwayTeam string `json:"awayTeam"`
	Insight  string `json:"insight"`
	Result   string `json:"result"` // "success" или "failure"
	Score    string `json:"score"`
	Analysis string `json:"analysis"`
}

// ResultDay — результаты за один день.
type ResultDay struct {
	Date    string        `json:"date"`
	Matches []ResultMatch `json:"matches"`
}
