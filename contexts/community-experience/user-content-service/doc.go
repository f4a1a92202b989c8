// Package usercontentservice owns questions and answers: creation, search,
// trending, ratings and the AI answer flow.
//
// Writes persist an outbox event in the same transaction as the content row;
// the worker relays those events and answers AI-enabled questions.
package usercontentservice
