// Command authctl runs account operations against a GoTrue compatible identity
// provider and prints the resulting authentication state as JSON.
//
//	authctl register -u https://<project>.supabase.co/auth/v1 -k <anon key> -e a@b.com -n Al
//	authctl verify -e a@b.com --code 123456 -s ~/.authctl/session.json
//	authctl whoami -s ~/.authctl/session.json
package main
