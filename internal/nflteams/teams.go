// Package nflteams is the static franchise lexicon used to normalize team
// markers embedded in ranking-source text ("Buffalo Bills", "(BUF)", "Jax")
// and to match team-defense entries by city or nickname.
package nflteams

import "strings"

type Team struct {
	Code     string // canonical 2-3 letter code, e.g. "SF"
	City     string // e.g. "San Francisco"
	Nickname string // e.g. "49ers"
}

var teams = []Team{
	{"ARI", "Arizona", "Cardinals"},
	{"ATL", "Atlanta", "Falcons"},
	{"BAL", "Baltimore", "Ravens"},
	{"BUF", "Buffalo", "Bills"},
	{"CAR", "Carolina", "Panthers"},
	{"CHI", "Chicago", "Bears"},
	{"CIN", "Cincinnati", "Bengals"},
	{"CLE", "Cleveland", "Browns"},
	{"DAL", "Dallas", "Cowboys"},
	{"DEN", "Denver", "Broncos"},
	{"DET", "Detroit", "Lions"},
	{"GB", "Green Bay", "Packers"},
	{"HOU", "Houston", "Texans"},
	{"IND", "Indianapolis", "Colts"},
	{"JAX", "Jacksonville", "Jaguars"},
	{"KC", "Kansas City", "Chiefs"},
	{"LAC", "Los Angeles", "Chargers"},
	{"LAR", "Los Angeles", "Rams"},
	{"LV", "Las Vegas", "Raiders"},
	{"MIA", "Miami", "Dolphins"},
	{"MIN", "Minnesota", "Vikings"},
	{"NE", "New England", "Patriots"},
	{"NO", "New Orleans", "Saints"},
	{"NYG", "New York", "Giants"},
	{"NYJ", "New York", "Jets"},
	{"PHI", "Philadelphia", "Eagles"},
	{"PIT", "Pittsburgh", "Steelers"},
	{"SEA", "Seattle", "Seahawks"},
	{"SF", "San Francisco", "49ers"},
	{"TB", "Tampa Bay", "Buccaneers"},
	{"TEN", "Tennessee", "Titans"},
	{"WAS", "Washington", "Commanders"},
}

// aliases maps every lowercase spelling we have seen in ranking feeds to the
// canonical code. Nicknames are unique across the league; cities are not
// (New York, Los Angeles), so ambiguous cities are omitted here.
var aliases = map[string]string{}

func init() {
	add := func(key, code string) {
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			return
		}
		if _, ok := aliases[key]; !ok {
			aliases[key] = code
		}
	}
	cityCount := make(map[string]int)
	for _, t := range teams {
		cityCount[strings.ToLower(t.City)]++
	}
	for _, t := range teams {
		add(t.Code, t.Code)
		add(t.Nickname, t.Code)
		add(t.City+" "+t.Nickname, t.Code)
		if cityCount[strings.ToLower(t.City)] == 1 {
			add(t.City, t.Code)
		}
	}
	// Alternate codes and spellings seen across sources.
	for alias, code := range map[string]string{
		"jac": "JAX", "wsh": "WAS", "gnb": "GB", "kan": "KC",
		"nwe": "NE", "nor": "NO", "sfo": "SF", "tam": "TB",
		"lvr": "LV", "oak": "LV", "sd": "LAC", "stl": "LAR",
		"football team": "WAS", "redskins": "WAS",
	} {
		add(alias, code)
	}
}

// Teams returns the full franchise table.
func Teams() []Team {
	out := make([]Team, len(teams))
	copy(out, teams)
	return out
}

// Normalize maps a team marker (code, nickname, or "City Nickname") to its
// canonical code.
func Normalize(s string) (string, bool) {
	code, ok := aliases[strings.ToLower(strings.TrimSpace(s))]
	return code, ok
}

// defenseNoise are the words ranking sources append to team-defense rows.
var defenseNoise = map[string]bool{
	"defense": true, "defence": true, "dst": true, "d/st": true,
	"d": true, "def": true, "st": true, "special": true, "teams": true,
}

// DefenseCode resolves a team-defense label ("49ers", "SF Defense",
// "Seattle Seahawks D/ST") to a franchise code.
func DefenseCode(s string) (string, bool) {
	fields := strings.Fields(strings.ToLower(s))
	kept := make([]string, 0, len(fields))
	for _, f := range fields {
		if defenseNoise[f] {
			continue
		}
		kept = append(kept, f)
	}
	// Longest leading phrase first: "new york jets" before "new york".
	for end := len(kept); end > 0; end-- {
		if code, ok := Normalize(strings.Join(kept[:end], " ")); ok {
			return code, true
		}
	}
	return "", false
}
