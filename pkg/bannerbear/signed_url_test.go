package bannerbear

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"k8s.io/utils/ptr"
)

var _ = Describe("Signed URLs", func() {
	hello := []Modification{{Name: "title", Text: ptr.To("Hello")}}

	It("matches the reference vector", func() {
		signed, err := SignURL("secret", "base_123", hello, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(signed).To(Equal("https://ondemand.bannerbear.com/signedurl/base_123/image.jpg" +
			"?modifications=W3sibmFtZSI6InRpdGxlIiwidGV4dCI6IkhlbGxvIn1d" +
			"&s=f805feefaa6c4f1d4248c8669047141743cc3367c65e5db0c1c2bb3eb214137e"))
	})

	It("signs exactly the URL preceding the signature parameter", func() {
		signed, err := SignURL("secret", "base_123", hello, true)
		Expect(err).NotTo(HaveOccurred())

		idx := strings.LastIndex(signed, "&s=")
		Expect(idx).To(BeNumerically(">", 0))
		mac := hmac.New(sha256.New, []byte("secret"))
		mac.Write([]byte(signed[:idx]))
		Expect(signed[idx+3:]).To(Equal(hex.EncodeToString(mac.Sum(nil))))
	})

	It("picks the host from the synchronous flag", func() {
		async, err := SignURL("secret", "base_123", hello, false)
		Expect(err).NotTo(HaveOccurred())
		sync, err := SignURL("secret", "base_123", hello, true)
		Expect(err).NotTo(HaveOccurred())

		asyncURL, err := url.Parse(async)
		Expect(err).NotTo(HaveOccurred())
		syncURL, err := url.Parse(sync)
		Expect(err).NotTo(HaveOccurred())
		Expect(asyncURL.Host).To(Equal("ondemand.bannerbear.com"))
		Expect(syncURL.Host).To(Equal("cdn.bannerbear.com"))
		Expect(asyncURL.Scheme).To(Equal("https"))
		Expect(asyncURL.Path).To(Equal("/signedurl/base_123/image.jpg"))
	})

	It("is deterministic", func() {
		first, err := SignURL("secret", "base_123", hello, false)
		Expect(err).NotTo(HaveOccurred())
		second, err := SignURL("secret", "base_123", hello, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(first).To(Equal(second))
	})

	DescribeTable("changes the signature when any input changes",
		func(apiKey, baseID string, mods []Modification, synchronous bool) {
			reference, err := SignURL("secret", "base_123", hello, false)
			Expect(err).NotTo(HaveOccurred())
			changed, err := SignURL(apiKey, baseID, mods, synchronous)
			Expect(err).NotTo(HaveOccurred())

			_, refSig, _ := splitSignature(reference)
			_, sig, _ := splitSignature(changed)
			Expect(sig).NotTo(Equal(refSig))
		},
		Entry("token", "secreT", "base_123", []Modification{{Name: "title", Text: ptr.To("Hello")}}, false),
		Entry("base id", "secret", "base_124", []Modification{{Name: "title", Text: ptr.To("Hello")}}, false),
		Entry("modification text", "secret", "base_123", []Modification{{Name: "title", Text: ptr.To("Hellp")}}, false),
		Entry("host", "secret", "base_123", []Modification{{Name: "title", Text: ptr.To("Hello")}}, true),
	)

	It("round-trips the modifications through the query parameter", func() {
		signed, err := SignURL("secret", "base_123", hello, false)
		Expect(err).NotTo(HaveOccurred())

		decoded, err := DecodeModifications(signed)
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded).To(Equal(hello))
	})

	It("keeps an empty text through the round trip", func() {
		blank := []Modification{{Name: "subtitle", Text: ptr.To("")}}
		signed, err := SignURL("secret", "base_123", blank, false)
		Expect(err).NotTo(HaveOccurred())
		// base64url(`[{"name":"subtitle","text":""}]`)
		Expect(signed).To(ContainSubstring("modifications=W3sibmFtZSI6InN1YnRpdGxlIiwidGV4dCI6IiJ9XQ&s="))

		decoded, err := DecodeModifications(signed)
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded).To(Equal(blank))
		Expect(decoded[0].Text).NotTo(BeNil())
	})

	It("does not HTML-escape modification values", func() {
		signed, err := SignURL("secret", "base_123", []Modification{{Name: "title", Text: ptr.To("a<b & c>d")}}, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(signed).To(ContainSubstring("modifications=W3sibmFtZSI6InRpdGxlIiwidGV4dCI6ImE8YiAmIGM-ZCJ9XQ&s="))
	})

	It("encodes an empty modification list as an empty JSON array", func() {
		signed, err := SignURL("secret", "base_123", nil, false)
		Expect(err).NotTo(HaveOccurred())
		// base64url("[]")
		Expect(signed).To(ContainSubstring("modifications=W10&s="))
	})

	It("requires a base id", func() {
		_, err := SignURL("secret", "", hello, false)
		Expect(err).To(HaveOccurred())
	})

	It("uses the client's token", func() {
		client := NewClient("secret")
		fromClient, err := client.SignedURL("base_123", hello, false)
		Expect(err).NotTo(HaveOccurred())
		direct, err := SignURL("secret", "base_123", hello, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(fromClient).To(Equal(direct))
	})

	Context("verification", func() {
		It("accepts its own output", func() {
			signed, err := SignURL("secret", "base_123", hello, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(VerifySignedURL("secret", signed)).To(BeTrue())
		})

		It("rejects a tampered URL", func() {
			signed, err := SignURL("secret", "base_123", hello, false)
			Expect(err).NotTo(HaveOccurred())
			tampered := strings.Replace(signed, "base_123", "base_999", 1)
			Expect(VerifySignedURL("secret", tampered)).To(BeFalse())
		})

		It("rejects the wrong key and unsigned URLs", func() {
			signed, err := SignURL("secret", "base_123", hello, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(VerifySignedURL("other", signed)).To(BeFalse())
			Expect(VerifySignedURL("secret", "https://cdn.bannerbear.com/signedurl/x/image.jpg")).To(BeFalse())
		})
	})
})
