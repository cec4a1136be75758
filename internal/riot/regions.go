package riot

import "strings"

var platformHosts = map[string]string{
	"euw1": "euw1.api.riotgames.com",
	"eun1": "eun1.api.riotgames.com",
	"na1":  "na1.api.riotgames.com",
	"kr":   "kr.api.riotgames.com",
	"jp1":  "jp1.api.riotgames.com",
	"br1":  "br1.api.riotgames.com",
	"la1":  "la1.api.riotgames.com",
	"la2":  "la2.api.riotgames.com",
	"oc1":  "oc1.api.riotgames.com",
	"tr1":  "tr1.api.riotgames.com",
	"ru":   "ru.api.riotgames.com",
}

var regionalHosts = map[string]string{
	"AMERICAS": "americas.api.riotgames.com",
	"EUROPE":   "europe.api.riotgames.com",
	"ASIA":     "asia.api.riotgames.com",
}

var regionToCluster = map[string]string{
	"euw1": "EUROPE",
	"eun1": "EUROPE",
	"tr1":  "EUROPE",
	"ru":   "EUROPE",
	"na1":  "AMERICAS",
	"br1":  "AMERICAS",
	"la1":  "AMERICAS",
	"la2":  "AMERICAS",
	"oc1":  "AMERICAS",
	"kr":   "ASIA",
	"jp1":  "ASIA",
}

// ValidRegion reports whether region is one of the platform codes the
// service accepts (lowercase, e.g. "euw1").
func ValidRegion(region string) bool {
	_, ok := platformHosts[region]
	return ok
}

func platformHost(region string) string {
	return platformHosts[region]
}

func regionalHost(region string) string {
	cluster, ok := regionToCluster[region]
	if !ok {
		return ""
	}
	return regionalHosts[cluster]
}

// MatchIDPrefix is the platform part of a match-v5 id, e.g. "EUW1" in
// "EUW1_7123456789".
func MatchIDPrefix(region string) string {
	return strings.ToUpper(region)
}
