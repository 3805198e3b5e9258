// Package domain contains the vocabulary entities shared by the scheduler:
// words with their learning statistics, study sessions and the learner's
// progress record, plus the error kinds every layer reports through.
//
// Entities carry their own invariants (Validate) but no policy. Mastery
// decisions live in domain/mastery; selection, session flow and progress
// roll-up live in their own packages.
package domain
