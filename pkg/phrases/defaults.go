package phrases

// =============================================================================
// DEFAULT PHRASE LISTS
// These are the built-in rule inputs. Deployments can extend them with a
// YAML file (see LoadFile); the file entries are merged on top of these.
// =============================================================================

// DefaultLists returns the built-in greeting, genuine-phrase, and
// scam-keyword lists. Entries are raw human-authored text; NewRegistry
// normalizes them.
func DefaultLists() Lists {
	return Lists{
		Greetings: []string{
			"hi", "hii", "helo", "hello", "hey",
			"hi there", "hello there",
			"good morning", "good afternoon", "good evening",
			"how are you", "how are you?",
			"hi how are you", "hello how are you", "hey how are you",
			"ok", "okay", "thanks", "thank you",
		},
		GreetingVocab: []string{
			"hi", "hii", "helo", "hello", "hey",
			"good", "morning", "afternoon", "evening", "night",
			"how", "are", "you", "there", "doing",
			"ok", "okay", "thanks", "thank", "hope", "well",
		},
		Genuine: []string{
			"i'm on my way",
			"on my way",
			"running late",
			"see you soon",
			"see you later",
			"let's meet",
			"let us meet",
			"let's catch up",
			"call me when you can",
			"call me later",
			"can you call me",
			"received the file",
			"i received the file",
			"thanks for the update",
			"thank you for the update",
			"thank you for your help",
			"thanks for your help",
			"happy birthday",
			"congratulations",
			"congrats",
			"meeting at",
			"see attached",
			"attached is",
			"i will be there",
			"i'll be there",
			"i have received",
			"payment received",
			"invoice received",
		},
		ScamKeywords: []string{
			"otp",
			"urgent",
			"lottery",
			"prize",
			"winner",
			"claim",
			"click",
			"verify",
			"blocked",
			"suspended",
			"kyc",
			"password",
			"refund",
			"free",
			"cash",
			"loan",
			"lucky draw",
			"account",
			"upi",
			"pin",
		},
	}
}
