// Package sw360search embeds the SW360 full-text search engine in a Go program.
//
// A Client opens the users and catalog realms, creates their indexes when
// missing, and runs merged searches across both:
//
//	client, _ := sw360search.New(ctx, sw360search.WithRedis("localhost:6379", ""))
//	defer client.Close()
//
//	client.Index(ctx, sw360search.RealmCatalog, []sw360search.Document{
//	    {ID: "c1", Type: "component", Fields: map[string]string{"name": "OpenSSL"}},
//	})
//	results, _ := client.SearchFiltered(ctx, "openssl", []string{"component"}, sw360search.User{})
//
// Texts containing "pkg:" are searched as exact phrases across their
// percent-encoded and decoded variants; see Expand.
package sw360search
