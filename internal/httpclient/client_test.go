package httpclient_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lateral-entry-portal/portal/internal/httpclient"
)

func TestHTTPClient(t *testing.T) {
	t.Parallel()
	RegisterFailHandler(Fail)
	RunSpecs(t, "HTTPClient Suite")
}

var _ = Describe("DefaultClient", func() {
	var (
		client     httpclient.Client
		mockServer *httptest.Server
		ctx        context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		client = httpclient.NewDefaultClient(5 * time.Second)
	})

	AfterEach(func() {
		if mockServer != nil {
			mockServer.Close()
			mockServer = nil
		}
	})

	Describe("NewDefaultClient", func() {
		It("should use default timeout when zero is provided", func() {
			Expect(httpclient.NewDefaultClient(0)).NotTo(BeNil())
		})
	})

	Describe("Get", func() {
		Context("Successful requests", func() {
			It("should fetch data and send identifying headers", func() {
				mockServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					defer GinkgoRecover()
					Expect(r.Header.Get("User-Agent")).To(Equal(httpclient.UserAgent))
					Expect(r.Header.Get("Accept")).To(Equal("application/json"))
					_, err := uuid.Parse(r.Header.Get(httpclient.RequestIDHeader))
					Expect(err).NotTo(HaveOccurred())

					w.WriteHeader(http.StatusOK)
					_, _ = w.Write([]byte(`{"total_appointees": 63}`))
				}))

				data, err := client.Get(ctx, mockServer.URL)
				Expect(err).NotTo(HaveOccurred())
				Expect(data).To(Equal([]byte(`{"total_appointees": 63}`)))
			})

			It("should accept any 2xx status", func() {
				mockServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(http.StatusNonAuthoritativeInfo)
					_, _ = w.Write([]byte(`[]`))
				}))

				data, err := client.Get(ctx, mockServer.URL)
				Expect(err).NotTo(HaveOccurred())
				Expect(data).To(Equal([]byte(`[]`)))
			})

			It("should handle empty response body", func() {
				mockServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(http.StatusOK)
				}))

				data, err := client.Get(ctx, mockServer.URL)
				Expect(err).NotTo(HaveOccurred())
				Expect(data).To(BeEmpty())
			})
		})

		Context("HTTP error responses", func() {
			DescribeTable("should return an HTTPError",
				func(status int) {
					mockServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
						w.WriteHeader(status)
					}))

					_, err := client.Get(ctx, mockServer.URL)
					Expect(err).To(HaveOccurred())
					Expect(err.Error()).To(ContainSubstring(fmt.Sprintf("HTTP %d", status)))
					Expect(httpclient.StatusCode(err)).To(Equal(status))
				},
				Entry("for 404 Not Found", http.StatusNotFound),
				Entry("for 500 Internal Server Error", http.StatusInternalServerError),
				Entry("for 503 Service Unavailable", http.StatusServiceUnavailable),
				Entry("for 304 Not Modified", http.StatusNotModified),
			)
		})

		Context("Network errors", func() {
			It("should handle invalid URL", func() {
				_, err := client.Get(ctx, "://invalid-url")
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("failed to create request"))
			})

			It("should handle unreachable host", func() {
				_, err := client.Get(ctx, "http://invalid-host-does-not-exist.local:9999")
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("failed to execute request"))
				Expect(httpclient.StatusCode(err)).To(BeZero())
			})
		})

		Context("Context cancellation", func() {
			It("should respect context cancellation", func() {
				mockServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					time.Sleep(500 * time.Millisecond)
					w.WriteHeader(http.StatusOK)
				}))

				cancelCtx, cancel := context.WithCancel(ctx)
				cancel()

				_, err := client.Get(cancelCtx, mockServer.URL)
				Expect(err).To(HaveOccurred())
			})
		})

		Context("Response size limits", func() {
			It("should reject response exceeding the limit via Content-Length", func() {
				mockServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					w.Header().Set("Content-Length", fmt.Sprintf("%d", httpclient.MaxResponseSize+1))
					w.WriteHeader(http.StatusOK)
				}))

				_, err := client.Get(ctx, mockServer.URL)
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("exceeds maximum allowed size"))
				Expect(err.Error()).To(ContainSubstring("32.00 MB"))
			})

			It("should reject response exceeding the limit by actual content", func() {
				mockServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(http.StatusOK)
					chunk := make([]byte, 1024*1024)
					for i := 0; i < 33; i++ {
						_, _ = w.Write(chunk)
					}
				}))

				_, err := client.Get(ctx, mockServer.URL)
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("exceeds maximum allowed size"))
			})
		})
	})
})
