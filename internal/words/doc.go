// Package words asks a generative text service for the words related to a
// user's input: an opposite, a synonym, a Gen-Z slang equivalent, and a
// translation with pronunciation guide into a supported Indian language.
package words
