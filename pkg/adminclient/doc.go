// Package adminclient is a Go client for the back-office admin API.
//
// A Client performs the unauthenticated calls (login, refresh). A Session
// holds the token pair and admin profile in a Storage, attaches the access
// token to every request, and on a 401 performs a single refresh before
// retrying once. When the refresh is rejected the session is cleared and the
// OnSessionExpired hook runs, which is where a UI sends the user back to the
// login screen.
//
//	client := adminclient.NewClient("https://example.com")
//	store, _ := adminclient.NewFileStorage(filepath.Join(configDir, "fitout", "session.json"))
//	sess, _ := adminclient.NewSession(client, store,
//		adminclient.OnSessionExpired(func() { showLogin() }))
//
//	if !sess.IsAuthenticated() {
//		_, err := sess.Login(ctx, email, password)
//	}
//	var stats adminclient.DashboardStats
//	err := sess.Do(ctx, http.MethodGet, "/api/admin/dashboard", nil, &stats)
package adminclient
