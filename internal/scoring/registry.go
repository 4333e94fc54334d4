package scoring

// BuiltinProfiles returns the scoring profile for every known sport.
func BuiltinProfiles() []Profile {
	return []Profile{
		nflProfile(),
		nbaProfile(),
		mlbProfile(),
		nhlProfile(),
		premierLeagueProfile(),
		formula1Profile(),
		ncaaFootballProfile(),
		boxingProfile(),
		mmaProfile(),
		tennisProfile(),
		golfProfile(),
		cricketProfile(),
		rugbyProfile(),
		volleyballProfile(),
		cyclingProfile(),
		motoGPProfile(),
		nascarProfile(),
		tableTennisProfile(),
	}
}
