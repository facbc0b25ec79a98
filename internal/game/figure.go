package game

// stages holds the gallows drawing for each wrong-guess count, empty gallows
// through the full figure at six misses.
var stages = [MaxWrongGuesses + 1]string{
	`
   +---+
   |   |
       |
       |
       |
       |
=========`,
	`
   +---+
   |   |
   O   |
       |
       |
       |
=========`,
	`
   +---+
   |   |
   O   |
   |   |
       |
       |
=========`,
	`
   +---+
   |   |
   O   |
  /|   |
       |
       |
=========`,
	`
   +---+
   |   |
   O   |
  /|\  |
       |
       |
=========`,
	`
   +---+
   |   |
   O   |
  /|\  |
  /    |
       |
=========`,
	`
   +---+
   |   |
   O   |
  /|\  |
  / \  |
       |
=========`,
}

// Figure is the ASCII gallows for the session's current miss count.
func (s *Session) Figure() string {
	n := s.wrong
	if n > MaxWrongGuesses {
		n = MaxWrongGuesses
	}
	return stages[n]
}
