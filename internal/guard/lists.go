package guard

// Embedded default lists. Override files extend these; they never
// replace them.

// blockTierDefault is always active unless the SFW level is off.
var blockTierDefault = []string{
	"suicide",
	"rape",
	"murder",
	"terrorist",
	"nazi",
	"cocaine",
	"heroin",
	"meth",
	"porn",
	"pornographic",
	"re:\\bf+u+c+k+\\w*",
	"re:\\bs+h+i+t+\\w*",
	"bitch",
	"bastard",
}

// blockTierAnatomy is added at the strict level.
var blockTierAnatomy = []string{
	"penis",
	"vagina",
	"genitals",
	"breast",
	"buttocks",
	"nipple",
}

// blockTierGeneral is added at the strict level.
var blockTierGeneral = []string{
	"kill",
	"killed",
	"killing",
	"weapon",
	"gun",
	"knife",
	"blood",
	"corpse",
	"drunk",
	"gambling",
	"cigarette",
	"naked",
	"sexy",
	"sexual",
}

// blockTierOrientation is added at the strict level. These terms are
// not unsafe per se; strict packs for young learners avoid identity
// topics entirely rather than risk clumsy exercise framing.
var blockTierOrientation = []string{
	"gay",
	"lesbian",
	"bisexual",
	"transgender",
	"heterosexual",
	"homosexual",
}

// allowListDefault overrides block patterns for benign common phrases.
var allowListDefault = []string{
	"re:\\bkill(s|ed|ing)? time\\b",
	"re:\\btime to kill\\b",
	"re:\\bdressed to kill\\b",
	"re:\\bbreast ?stroke\\b",
	"re:\\bchicken breast\\b",
	"re:\\bblood pressure\\b",
	"re:\\bblood type\\b",
	"re:\\bgun metal\\b",
}

// properContextDefault is the gazetteer of institutional and
// geographic head nouns that turn an adjacent ordinal into a proper
// name ("3rd Battalion", "Fifth Avenue").
var properContextDefault = []string{
	"army", "avenue", "battalion", "brigade", "cathedral", "century",
	"church", "college", "congress", "county", "district", "division",
	"duke", "dynasty", "earl", "empire", "fleet", "institute", "king",
	"lake", "mountain", "parliament", "party", "pope", "president",
	"queen", "regiment", "republic", "river", "street", "symphony",
	"university", "ward", "world war",
}

// nationalityDefault lists nationality adjectives, also treated as
// proper-noun context.
var nationalityDefault = []string{
	"american", "australian", "austrian", "belgian", "brazilian",
	"british", "canadian", "chinese", "czech", "danish", "dutch",
	"egyptian", "english", "finnish", "french", "german", "greek",
	"hungarian", "indian", "indonesian", "irish", "italian", "japanese",
	"korean", "mexican", "norwegian", "polish", "portuguese", "roman",
	"russian", "scottish", "spanish", "swedish", "swiss", "turkish",
	"vietnamese", "welsh",
}

// defaultAcronymAllow lists all-caps tokens that are ordinary
// vocabulary for learners.
var defaultAcronymAllow = map[string]bool{
	"OK":  true,
	"TV":  true,
	"PC":  true,
	"CD":  true,
	"DVD": true,
	"ID":  true,
	"PM":  true,
	"AM":  true,
	"DIY": true,
	"FAQ": true,
	"ATM": true,
}
