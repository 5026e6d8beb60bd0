package teams

// franchise describes one current franchise and every identifier variant
// that should resolve to it, including codes and names of relocated or
// rebranded predecessors. Variants always map to the *current* code.
type franchise struct {
	Code     string
	Location string
	Nickname string
	Aliases  []string
}

var catalog = []franchise{
	{Code: "ARI", Location: "Arizona", Nickname: "Cardinals", Aliases: []string{"ARZ", "CRD", "Phoenix Cardinals", "St. Louis Cardinals"}},
	{Code: "ATL", Location: "Atlanta", Nickname: "Falcons", Aliases: []string{"ATL"}},
	{Code: "BAL", Location: "Baltimore", Nickname: "Ravens", Aliases: []string{"RAV"}},
	{Code: "BUF", Location: "Buffalo", Nickname: "Bills", Aliases: []string{"BUF"}},
	{Code: "CAR", Location: "Carolina", Nickname: "Panthers", Aliases: []string{"CAR"}},
	{Code: "CHI", Location: "Chicago", Nickname: "Bears", Aliases: []string{"CHI"}},
	{Code: "CIN", Location: "Cincinnati", Nickname: "Bengals", Aliases: []string{"CIN"}},
	{Code: "CLE", Location: "Cleveland", Nickname: "Browns", Aliases: []string{"CLV"}},
	{Code: "DAL", Location: "Dallas", Nickname: "Cowboys", Aliases: []string{"DAL"}},
	{Code: "DEN", Location: "Denver", Nickname: "Broncos", Aliases: []string{"DEN"}},
	{Code: "DET", Location: "Detroit", Nickname: "Lions", Aliases: []string{"DET"}},
	{Code: "GB", Location: "Green Bay", Nickname: "Packers", Aliases: []string{"GNB"}},
	{Code: "HOU", Location: "Houston", Nickname: "Texans", Aliases: []string{"HTX"}},
	{Code: "IND", Location: "Indianapolis", Nickname: "Colts", Aliases: []string{"CLT", "Baltimore Colts"}},
	{Code: "JAX", Location: "Jacksonville", Nickname: "Jaguars", Aliases: []string{"JAC"}},
	{Code: "KC", Location: "Kansas City", Nickname: "Chiefs", Aliases: []string{"KAN"}},
	{Code: "LA", Location: "Los Angeles", Nickname: "Rams", Aliases: []string{"LAR", "RAM", "STL", "St. Louis Rams"}},
	{Code: "LAC", Location: "Los Angeles", Nickname: "Chargers", Aliases: []string{"SD", "SDG", "San Diego Chargers"}},
	{Code: "LV", Location: "Las Vegas", Nickname: "Raiders", Aliases: []string{"LVR", "OAK", "RAI", "Oakland Raiders", "Los Angeles Raiders"}},
	{Code: "MIA", Location: "Miami", Nickname: "Dolphins", Aliases: []string{"MIA"}},
	{Code: "MIN", Location: "Minnesota", Nickname: "Vikings", Aliases: []string{"MIN"}},
	{Code: "NE", Location: "New England", Nickname: "Patriots", Aliases: []string{"NWE", "Boston Patriots"}},
	{Code: "NO", Location: "New Orleans", Nickname: "Saints", Aliases: []string{"NOR"}},
	{Code: "NYG", Location: "New York", Nickname: "Giants", Aliases: []string{"NYG"}},
	{Code: "NYJ", Location: "New York", Nickname: "Jets", Aliases: []string{"NYJ"}},
	{Code: "PHI", Location: "Philadelphia", Nickname: "Eagles", Aliases: []string{"PHI"}},
	{Code: "PIT", Location: "Pittsburgh", Nickname: "Steelers", Aliases: []string{"PIT"}},
	{Code: "SEA", Location: "Seattle", Nickname: "Seahawks", Aliases: []string{"SEA"}},
	{Code: "SF", Location: "San Francisco", Nickname: "49ers", Aliases: []string{"SFO", "Niners"}},
	{Code: "TB", Location: "Tampa Bay", Nickname: "Buccaneers", Aliases: []string{"TAM", "Bucs"}},
	{Code: "TEN", Location: "Tennessee", Nickname: "Titans", Aliases: []string{"OTI", "HST", "Houston Oilers", "Tennessee Oilers", "Oilers"}},
	{Code: "WAS", Location: "Washington", Nickname: "Commanders", Aliases: []string{"WSH", "Redskins", "Washington Redskins", "Washington Football Team", "Football Team"}},
}
