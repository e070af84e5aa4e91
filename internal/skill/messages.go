package skill

const (
	SkillName = "Food Hero"

	MissingPermissionMessage = "To find food near you, I need your permission to view your zipcode"
	AddressPermission        = "read::alexa:device:all:address:country_and_postal_code"

	PostalLookupFailedMessage = "Sorry I was unable to retrieve your postal code"
	NoRestaurantsMessage      = "Sorry I was unable to retrieve any food given your postal code"
	FallbackMessage           = "Uh oh, I was not able to find your dinner. Try again later."

	HelpMessage  = "I can tell you what to eat?"
	HelpReprompt = "What can I help you with?"
	StopMessage  = "Goodbye!"
)

// dinnerPrefixes are the spoken lead-ins; the restaurant name follows directly.
var dinnerPrefixes = [...]string{
	"Here's what you should eat: ",
	"How about: ",
	"This looks good: ",
	"Yum. How about this: ",
}

// DinnerPrefixes returns a copy of the lead-in phrases.
func DinnerPrefixes() []string {
	return append([]string(nil), dinnerPrefixes[:]...)
}
