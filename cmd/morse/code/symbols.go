// Package code turns text into Morse tokens and timed on/off schedules.
package code

// letters holds the signalable alphabet: A-Z and 0-9.
var letters = map[rune]string{
	'A': ".-", 'B': "-...", 'C': "-.-.", 'D': "-..", 'E': ".",
	'F': "..-.", 'G': "--.", 'H': "....", 'I': "..", 'J': ".---",
	'K': "-.-", 'L': ".-..", 'M': "--", 'N': "-.", 'O': "---",
	'P': ".--.", 'Q': "--.-", 'R': ".-.", 'S': "...", 'T': "-",
	'U': "..-", 'V': "...-", 'W': ".--", 'X': "-..-", 'Y': "-.--",
	'Z': "--..",
	'0': "-----", '1': ".----", '2': "..---", '3': "...--", '4': "....-",
	'5': ".....", '6': "-....", '7': "--...", '8': "---..", '9': "----.",
}

// punctuation is only understood by the text encoder/decoder. It is never
// signaled.
var punctuation = map[rune]string{
	'.': ".-.-.-", ',': "--..--", '?': "..--..", '\'': ".----.",
	'!': "-.-.--", '/': "-..-.", '(': "-.--.", ')': "-.--.-",
	'&': ".-...", ':': "---...", ';': "-.-.-.", '=': "-...-",
	'+': ".-.-.", '-': "-....-", '_': "..--.-", '"': ".-..-.",
	'$': "...-..-", '@': ".--.-.",
}

var fromMorse map[string]rune

func init() {
	fromMorse = make(map[string]rune, len(letters)+len(punctuation))
	for k, v := range letters {
		fromMorse[v] = k
	}
	for k, v := range punctuation {
		fromMorse[v] = k
	}
}

// Lookup returns the dot-dash pattern for an uppercase letter or digit, or
// "" when r has no signalable encoding.
func Lookup(r rune) string {
	return letters[r]
}
