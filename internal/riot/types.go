package riot

// Account is the riot/account-v1 payload.
type Account struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// Summoner is the lol/summoner-v4 payload.
type Summoner struct {
	PUUID         string `json:"puuid"`
	ProfileIconID int    `json:"profileIconId"`
	RevisionDate  int64  `json:"revisionDate"`
	SummonerLevel int    `json:"summonerLevel"`
}

// LeagueEntry is one ranked queue entry from lol/league-v4.
type LeagueEntry struct {
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	HotStreak    bool   `json:"hotStreak"`
}

// ChampionMastery is one entry from lol/champion-mastery-v4.
type ChampionMastery struct {
	ChampionID     int64  `json:"championId"`
	ChampionLevel  int    `json:"championLevel"`
	ChampionPoints int    `json:"championPoints"`
	LastPlayTime   int64  `json:"lastPlayTime"`
	ChampionName   string `json:"championName,omitempty"`
	ChampionImage  string `json:"championImage,omitempty"`
}

// SpectatorGame carries the fields of a spectator-v5 active game that the
// reconciliation logic inspects. The full payload stays in its raw map so
// the handler can pass it through untouched apart from enrichment.
type SpectatorGame struct {
	GameID            int64                  `mapstructure:"gameId"`
	GameQueueConfigID int64                  `mapstructure:"gameQueueConfigId"`
	GameStartTime     int64                  `mapstructure:"gameStartTime"`
	PlatformID        string                 `mapstructure:"platformId"`
	Participants      []SpectatorParticipant `mapstructure:"participants"`
}

// SpectatorParticipant is one player in a spectator game.
type SpectatorParticipant struct {
	PUUID      string `mapstructure:"puuid"`
	ChampionID int64  `mapstructure:"championId"`
	TeamID     int64  `mapstructure:"teamId"`
	RiotID     string `mapstructure:"riotId"`
	Bot        bool   `mapstructure:"bot"`
}
