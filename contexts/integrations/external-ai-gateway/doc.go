// Package externalaigateway proxies prompts to the external AI providers:
// Wolfram (rendered answer image) and a GPT-style completion endpoint.
package externalaigateway
