package auth

import (
	"fmt"
	"io"
	"strings"
)

// ShowTokenGuide prints step-by-step instructions for obtaining a bearer token
func ShowTokenGuide(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintln(w, "📚 TWITTER BEARER TOKEN GUIDE")
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "This tool reads follower lists with an app-only bearer token.")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "🌐 STEP 1: Open the developer portal")
	fmt.Fprintln(w, "   - Go to https://developer.twitter.com/en/portal/dashboard")
	fmt.Fprintln(w, "   - Sign in and create a project and app if you have none")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "🔑 STEP 2: Generate the token")
	fmt.Fprintln(w, "   - Open your app and go to 'Keys and tokens'")
	fmt.Fprintln(w, "   - Under 'Bearer Token' click 'Generate' (or 'Regenerate')")
	fmt.Fprintln(w, "   - Copy the value, it is shown only once")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "💾 STEP 3: Give it to twfollowers")
	fmt.Fprintln(w, "   • twfollowers auth login --name default")
	fmt.Fprintln(w, "   • or export TWITTER_FOLLOWERS_BEARER=<token>")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "💡 TIPS:")
	fmt.Fprintln(w, "   • The followers endpoint allows 15 requests per 15 minutes")
	fmt.Fprintln(w, "   • Large accounts take a while, the tool waits out rate limits on its own")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "⚠️  SECURITY WARNING:")
	fmt.Fprintln(w, "   • The token acts on behalf of your app, never share it")
	fmt.Fprintln(w, "   • Stored tokens are kept in the system keychain or an encrypted file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintln(w)
}

// ShowQuickTokenGuide prints a one-line reminder
func ShowQuickTokenGuide(w io.Writer) {
	fmt.Fprintln(w, "\n🔑 Developer portal → your app → Keys and tokens → Bearer Token")
	fmt.Fprintln(w, "   Type 'help' for detailed instructions")
}
